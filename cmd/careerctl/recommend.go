package main

import (
	"github.com/spf13/cobra"

	"career-backend/internal/careers"
)

var (
	recSkills     string
	recExperience string
	recInterests  string
	recNoTech     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommended career paths for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newLLM(ctx, loadConfig())
		if err != nil {
			return err
		}
		svc := careers.NewService(client, nil, nil, 0)
		res, err := svc.RecommendFor(ctx, careers.Input{
			Skills:               recSkills,
			Experience:           recExperience,
			Interests:            recInterests,
			ConsiderTechnologies: !recNoTech,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res.CareerPaths)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recSkills, "skills", "", "comma separated skills")
	recommendCmd.Flags().StringVar(&recExperience, "experience", "", "experience summary")
	recommendCmd.Flags().StringVar(&recInterests, "interests", "", "interests")
	recommendCmd.Flags().BoolVar(&recNoTech, "no-tech", false, "do not tailor roadmaps to specific technologies")
	for _, name := range []string{"skills", "experience", "interests"} {
		_ = recommendCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(recommendCmd)
}
