package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takakv/cyclic/algebra"
	"github.com/takakv/cyclic/factor"
	"github.com/takakv/cyclic/group"
	"github.com/takakv/cyclic/prime"
	"github.com/takakv/cyclic/ring"
)

func primeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prime n",
		Short: "test n for primality.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := algebra.ParseInt(args[0])
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			verdict := "composite"
			if prime.IsProbablePrime(n, getInt(cmd, "rounds"), getFlag(cmd, "skip-checks")) {
				verdict = "probably prime"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", algebra.FormatInt(n, f), verdict)
			return nil
		},
	}
	cmd.Flags().Bool("skip-checks", false, "skip trial division by small primes")
	return cmd
}

func nextPrimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-prime n",
		Short: "print the smallest prime above n.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := algebra.ParseInt(args[0])
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), algebra.FormatInt(prime.NextPrime(n), f))
			return nil
		},
	}
}

func prevPrimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev-prime n",
		Short: "print the largest prime below n.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := algebra.ParseInt(args[0])
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			p, err := prime.PreviousPrime(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), algebra.FormatInt(p, f))
			return nil
		},
	}
}

func factorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factor n",
		Short: "factor n and print its totients.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := algebra.ParseInt(args[0])
			if err != nil {
				return err
			}
			factors, err := factorizer(cmd).Factorize(n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%v = %s\n", n, factor.Format(factors))
			fmt.Fprintf(out, "phi = %v\n", factor.Phi(factors))
			fmt.Fprintf(out, "lambda = %v\n", factor.Lambda(factors))
			return nil
		},
	}
}

func sqrtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqrt a --modulus p",
		Short: "print the square roots of a modulo the odd prime p.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getInteger(cmd, "modulus")
			if err != nil {
				return err
			}
			f, err := getFormat(cmd)
			if err != nil {
				return err
			}
			r, err := ring.NewMultiplicativeRing(p, nil)
			if err != nil {
				return err
			}
			a, err := r.ElementFromString(args[0])
			if err != nil {
				return err
			}
			roots, ok, err := a.Sqrt()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(out, "%s is not a square in %v\n", a.Format(f), r)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", roots[0].Format(f), roots[1].Format(f))
			return nil
		},
	}
	cmd.Flags().String("modulus", "", "prime modulus")
	return cmd
}

func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order x --modulus n",
		Short: "print the order of x in the multiplicative (or additive) group modulo n.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := getInteger(cmd, "modulus")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if getFlag(cmd, "additive") {
				g, err := group.NewAdditiveGroup(n)
				if err != nil {
					return err
				}
				x, err := g.ElementFromString(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "order %v in %v\n", x.Order(), g)
				if x.IsPrimitive() {
					fmt.Fprintln(out, "generator")
				}
				return nil
			}

			g, err := group.NewMultiplicativeGroup(n, nil, group.WithFactorizer(factorizer(cmd)))
			if err != nil {
				return err
			}
			x, err := g.ElementFromString(args[0])
			if err != nil {
				return err
			}
			k, err := x.Order()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "order %v in %v\n", k, g)
			primitive, err := x.IsPrimitive()
			if err != nil {
				return err
			}
			if primitive {
				fmt.Fprintln(out, "generator")
			}
			return nil
		},
	}
	cmd.Flags().String("modulus", "", "group modulus")
	cmd.Flags().Bool("additive", false, "use the additive group")
	return cmd
}
