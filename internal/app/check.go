package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

var (
	checkSleep  float64
	checkSocial float64
	checkEnergy float64
)

var checkCmd = &cobra.Command{
	Use:   "check WORK_HOURS SCREEN_HOURS",
	Short: "Instant check of today's work and screen hours",
	Long: `Evaluate today's numbers without logging them. Work and screen hours are
required; sleep, social time and energy refine the result when given.
Messages are printed in rule order. Nothing is written to the database.

Examples:
  daypattern check 9 7
  daypattern check 11 10 --energy 3
  daypattern check 2 1 --json`,
	// pflag reads "-1" as a shorthand flag; runCheck parses flags itself so
	// negative hours reach validation.
	DisableFlagParsing: true,
	RunE:               runCheck,
}

func init() {
	checkCmd.Flags().Float64Var(&checkSleep, "sleep", 0, "Hours slept")
	checkCmd.Flags().Float64Var(&checkSocial, "social", 0, "Hours spent with other people")
	checkCmd.Flags().Float64Var(&checkEnergy, "energy", 0, "Emotional energy rating, 1-10")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, raw []string) error {
	fs := cmd.Flags()
	if err := fs.Parse(separateNegatives(fs, raw)); err != nil {
		return err
	}
	if help, _ := fs.GetBool("help"); help {
		return cmd.Help()
	}
	args := fs.Args()
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	work, err := cast.ToFloat64E(args[0])
	if err != nil {
		return fmt.Errorf("work hours %q is not a number", args[0])
	}
	screen, err := cast.ToFloat64E(args[1])
	if err != nil {
		return fmt.Errorf("screen hours %q is not a number", args[1])
	}

	var opts []suggest.InstantOption
	if cmd.Flags().Changed("sleep") {
		opts = append(opts, suggest.WithSleep(checkSleep))
	}
	if cmd.Flags().Changed("social") {
		opts = append(opts, suggest.WithSocial(checkSocial))
	}
	if cmd.Flags().Changed("energy") {
		opts = append(opts, suggest.WithEnergy(checkEnergy))
	}

	result, err := e.engine.Check(work, screen, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, result)
	}

	fmt.Fprintln(out, output.Section(fmt.Sprintf("Today: %.1fh work, %.1fh screen", result.WorkHours, result.ScreenTime)))
	fmt.Fprint(out, output.MessageList(result.Suggestions))
	return nil
}

// separateNegatives moves positional negative numbers behind a "--" so the
// flag parser leaves them alone. Flag values, "-x 1" or "--sleep -1", stay put.
func separateNegatives(fs *pflag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case isNumber(a) || !strings.HasPrefix(a, "-") || a == "-":
			positional = append(positional, a)
		default:
			flags = append(flags, a)
			if takesValue(fs, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return append(append(flags, "--"), positional...)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// takesValue reports whether a flag token without "=" consumes the next arg.
func takesValue(fs *pflag.FlagSet, token string) bool {
	if strings.Contains(token, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(token, "--"); ok {
		f = fs.Lookup(name)
	} else if len(token) == 2 {
		f = fs.ShorthandLookup(token[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
