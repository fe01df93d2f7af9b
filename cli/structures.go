package cli

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/curve"
	"github.com/takakv/cyclic/linalg"
	"github.com/takakv/cyclic/poly"
	"github.com/takakv/cyclic/ring"
)

func primeField(cmd *cobra.Command) (*ring.MultiplicativeRing, error) {
	p, err := getInteger(cmd, "modulus")
	if err != nil {
		return nil, err
	}
	return ring.NewMultiplicativeRing(p, nil, ring.WithFactorizer(factorizer(cmd)))
}

func curveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "elliptic curves over prime fields.",
	}

	points := &cobra.Command{
		Use:   "points --modulus p --a a --b b",
		Short: "list the points of y^2 = x^3 + ax + b over GF(p).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := primeField(cmd)
			if err != nil {
				return err
			}
			a, err := getInteger(cmd, "a")
			if err != nil {
				return err
			}
			b, err := getInteger(cmd, "b")
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			c, err := curve.New(field, a, b, nil)
			if err != nil {
				return err
			}
			ps, err := c.AllElements()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%v has %d points\n", c, len(ps))
			for _, p := range ps {
				fmt.Fprintln(out, p.Format(f))
			}
			return nil
		},
	}
	points.Flags().String("modulus", "", "prime field modulus")
	points.Flags().String("a", "", "coefficient of x")
	points.Flags().String("b", "", "constant coefficient")

	named := &cobra.Command{
		Use:   "named name",
		Short: "print the parameters of P-256, P-384 or secp256k1.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := curve.Named(args[0])
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			g, err := c.Generator()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name: %s\n", c.Name())
			fmt.Fprintf(out, "field: %s\n", algebra.FormatInt(c.Field().Modulus(), f))
			fmt.Fprintf(out, "a: %s\n", c.A().Format(f))
			fmt.Fprintf(out, "b: %s\n", c.B().Format(f))
			fmt.Fprintf(out, "generator: %s\n", g.Format(f))
			fmt.Fprintf(out, "order: %s\n", algebra.FormatInt(c.Order(), f))
			return nil
		},
	}

	cmd.AddCommand(points, named)
	return cmd
}

func polyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poly",
		Short: "polynomials over prime fields.",
	}

	factorize := &cobra.Command{
		Use:   "factor polynomial --modulus p",
		Short: "factor a polynomial such as \"x^4 + 4\" over GF(p).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := primeField(cmd)
			if err != nil {
				return err
			}
			p, err := poly.Parse[*ring.RingElement](field, args[0])
			if err != nil {
				return err
			}
			unit, factors, err := p.Factorize()
			if err != nil {
				return err
			}
			parts := make([]string, 0, len(factors)+1)
			if !unit.IsOne() {
				parts = append(parts, unit.String())
			}
			for _, f := range factors {
				parts = append(parts, f.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v = %s\n", p, strings.Join(parts, " "))
			return nil
		},
	}
	factorize.Flags().String("modulus", "", "prime field modulus")

	roots := &cobra.Command{
		Use:   "roots polynomial --modulus p",
		Short: "print the roots of a polynomial over GF(p).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := primeField(cmd)
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			p, err := poly.Parse[*ring.RingElement](field, args[0])
			if err != nil {
				return err
			}
			rs, err := p.Roots()
			if err != nil {
				return err
			}
			parts := make([]string, len(rs))
			for i, r := range rs {
				parts[i] = r.Format(f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", strings.Join(parts, ", "))
			return nil
		},
	}
	roots.Flags().String("modulus", "", "prime field modulus")

	cmd.AddCommand(factorize, roots)
	return cmd
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve --modulus n --matrix \"1,2;3,4\" --vector \"5,6\"",
		Short: "solve a linear system modulo n.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := getInteger(cmd, "modulus")
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			r, err := ring.NewMultiplicativeRing(n, nil, ring.WithFactorizer(factorizer(cmd)))
			if err != nil {
				return err
			}

			var matrix [][]*ring.RingElement
			for _, row := range strings.Split(getString(cmd, "matrix"), ";") {
				vs, err := parseIntegers(row)
				if err != nil {
					return err
				}
				elems := make([]*ring.RingElement, len(vs))
				for i, v := range vs {
					elems[i] = r.FromInt(v)
				}
				matrix = append(matrix, elems)
			}
			vs, err := parseIntegers(getString(cmd, "vector"))
			if err != nil {
				return err
			}
			vector := make([]*ring.RingElement, len(vs))
			for i, v := range vs {
				vector[i] = r.FromInt(v)
			}

			var opts []linalg.Option
			if getFlag(cmd, "verbose") {
				opts = append(opts, linalg.WithDebug(log.WithField("component", "linalg")))
			}
			x, err := linalg.Solve(r, matrix, vector, opts...)
			if err != nil {
				return err
			}
			res := make([]string, len(x))
			for i, v := range x {
				res[i] = v.Format(f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", strings.Join(res, ", "))
			return nil
		},
	}
	cmd.Flags().String("modulus", "", "ring modulus")
	cmd.Flags().String("matrix", "", "rows separated by ';', entries by ','")
	cmd.Flags().String("vector", "", "entries separated by ','")
	return cmd
}
