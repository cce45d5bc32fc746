package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

var screenFlags struct {
	userID      string
	role        string
	requirement string
	name        string
	skills      []string
	experience  float64
	education   string
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score a candidate against a requirement",
	RunE:  runScreen,
}

func init() {
	f := screenCmd.Flags()
	f.StringVar(&screenFlags.userID, "user-id", "", "id of the screening user")
	f.StringVar(&screenFlags.role, "role", "ADMIN", "ADMIN or RECRUITER")
	f.StringVar(&screenFlags.requirement, "requirement", "", "requirement id")
	f.StringVar(&screenFlags.name, "name", "", "candidate name")
	f.StringSliceVar(&screenFlags.skills, "skills", nil, "candidate skills, comma separated")
	f.Float64Var(&screenFlags.experience, "experience", 0, "years of experience")
	f.StringVar(&screenFlags.education, "education", "", "highest education")
	_ = screenCmd.MarkFlagRequired("requirement")
	_ = screenCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	cfg, log := bootstrap()

	a, err := newApp(cmd.Context(), cfg, log, false)
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	res, err := a.screening.Screen(cmd.Context(), ports.ScreenInput{
		User: domain.User{
			ID:   domain.ID(screenFlags.userID),
			Role: domain.ParseRole(screenFlags.role),
		},
		RequirementID: screenFlags.requirement,
		Candidate: domain.Candidate{
			Name:       screenFlags.name,
			Skills:     domain.Skills{List: screenFlags.skills},
			Experience: domain.Experience(strconv.FormatFloat(screenFlags.experience, 'f', -1, 64)),
			Education:  screenFlags.education,
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
