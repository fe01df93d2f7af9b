package cli

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/util"
)

// Flags are registered before use, so a lookup error is a programming error.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// getInteger parses a required integer flag.
func getInteger(cmd *cobra.Command, flag string) (*big.Int, error) {
	s := getString(cmd, flag)
	if s == "" {
		return nil, fmt.Errorf("%w: --%s is required", util.ErrInvalidArgument, flag)
	}
	v, err := algebra.ParseInt(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return v, nil
}

func getFormat(cmd *cobra.Command) (algebra.Format, error) {
	return algebra.ParseFormat(getString(cmd, "format"))
}

// factorizer builds a factorizer honouring --budget.
func factorizer(cmd *cobra.Command) *factor.Factorizer {
	return factor.New(
		factor.WithRounds(getInt(cmd, "budget")),
		factor.WithLogger(log.WithField("component", "factor")),
	)
}

// parseIntegers splits a comma separated list.
func parseIntegers(s string) ([]*big.Int, error) {
	var res []*big.Int
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := algebra.ParseInt(part)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
