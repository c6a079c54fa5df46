package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/reliability"
	"github.com/reviewdb/lr/internal/screening"
)

var kappaStage string

var kappaCmd = &cobra.Command{
	Use:   "kappa <review-id>",
	Short: "Compute inter-rater reliability for a screening stage",
	Long: `Compute Cohen's kappa over all papers screened by exactly two
reviewers at the given stage. Papers screened by fewer or more reviewers
are excluded from the paired set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		calc := reliability.NewCalculator(db)
		report, err := calc.ScreeningKappa(args[0], kappaStage)
		if err != nil {
			if errors.Is(err, reliability.ErrNoPairedPapers) {
				exitWithError(ExitNoData, "no dual-screened papers at stage %s", kappaStage)
			}
			exitWithError(ExitError, "computing kappa: %s", err)
		}

		if humanOutput {
			outputHuman("kappa: %.3f (%s)\n", report.Kappa, report.Interpretation)
			outputHuman("paired papers: %d, agreement: %d (%.1f%%)\n",
				report.TotalPairedPapers, report.AgreementCount, report.PercentAgreement)
			for _, d := range report.Disagreements {
				outputHuman("  %s: %s=%s vs %s=%s\n",
					d.PaperID, d.Reviewer1, d.Decision1, d.Reviewer2, d.Decision2)
			}
			return
		}
		outputJSON(report)
	},
}

func init() {
	kappaCmd.Flags().StringVar(&kappaStage, "stage", screening.StageTitleAbstract, "Screening stage")
	rootCmd.AddCommand(kappaCmd)
}
