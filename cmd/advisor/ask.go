package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlorentedev/advisor/internal/advisor"
	"github.com/mlorentedev/advisor/internal/config"
	"github.com/mlorentedev/advisor/internal/handler"
)

var (
	askPersona string
	askModel   string
)

var askCmd = &cobra.Command{
	Use:   "ask [text...]",
	Short: "Ask the selected expert once and print the answer",
	Long: `Sends the joined arguments to the model as the selected persona.

Example:
  advisor ask --persona A 都心中古ワンルーム投資の注意点
  advisor ask --persona B 体脂肪を落とすための食事例`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askPersona, "persona", "p", "A", "expert selector (A or B)")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model id (defaults to the configured provider)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	if strings.TrimSpace(input) == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), handler.EmptyInputMessage)
		return advisor.ErrEmptyInput
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	adv, _, err := buildAdvisor(cmd.Context(), cfg, useMock, credentialSource(cfg), logger)
	if err != nil {
		return err
	}

	ans, err := adv.Consult(cmd.Context(), askPersona, askModel, input)
	if errors.Is(err, advisor.ErrEmptyInput) {
		fmt.Fprintln(cmd.ErrOrStderr(), handler.EmptyInputMessage)
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "回答")
	fmt.Fprintln(out, ans.Text)
	return nil
}
