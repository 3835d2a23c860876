package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	blessingPoem      bool
	blessingRecipient string
	blessingStyle     string
)

var blessingCmd = &cobra.Command{
	Use:   "blessing",
	Short: "Print one generated blessing (or poem)",
	Long: `Asks the text API for a blessing and prints it. Failures print the same
fixed phrases the interactive view shows.`,
	Args: cobra.NoArgs,
	RunE: runBlessing,
}

func init() {
	f := blessingCmd.Flags()
	f.BoolVar(&blessingPoem, "poem", false, "print a four-line poem instead")
	f.StringVar(&blessingRecipient, "to", "", "recipient (overrides config)")
	f.StringVar(&blessingStyle, "style", "", "tone of the blessing (overrides config)")
}

func runBlessing(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := stderrLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	greeter, err := newGreeter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if blessingPoem {
		_, err = fmt.Fprintln(out, greeter.Poem(ctx))
		return err
	}
	w := greeter.Blessing(ctx, blessingRecipient, blessingStyle)
	_, err = fmt.Fprintln(out, w.Text)
	return err
}
