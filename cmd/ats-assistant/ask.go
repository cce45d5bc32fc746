package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

var askFlags struct {
	userID   string
	role     string
	clientID string
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the assistant a question as the given user",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askFlags.userID, "user-id", "", "id of the asking user")
	askCmd.Flags().StringVar(&askFlags.role, "role", "ADMIN", "ADMIN, RECRUITER or CLIENT")
	askCmd.Flags().StringVar(&askFlags.clientID, "client-id", "", "client id for CLIENT users")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, log := bootstrap()

	a, err := newApp(cmd.Context(), cfg, log, false)
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	user := &domain.User{
		ID:       domain.ID(askFlags.userID),
		Role:     domain.ParseRole(askFlags.role),
		ClientID: domain.ID(askFlags.clientID),
	}
	res, err := a.chat.Answer(cmd.Context(), strings.Join(args, " "), user)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"answer": res.Answer, "context": res.Context})
}
