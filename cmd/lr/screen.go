package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/screening"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Record and query screening decisions",
}

var (
	screenReviewID  string
	screenPaperID   string
	screenReviewer  string
	screenStage     string
	screenDecision  string
	screenRationale string
)

var screenRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a screening decision",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		workflow := screening.NewWorkflow(db)
		id, err := workflow.RecordDecision(screenReviewID, screenPaperID, screenReviewer,
			screenStage, screenDecision, screenRationale)
		if err != nil {
			if errors.Is(err, screening.ErrRationaleRequired) {
				exitWithError(ExitDataError, "%s", err)
			}
			exitWithError(ExitError, "recording decision: %s", err)
		}

		if humanOutput {
			outputHuman("recorded %s\n", id)
			return
		}
		outputJSON(map[string]string{"screening_id": id})
	},
}

var screenPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List papers still needing screening by a reviewer",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		workflow := screening.NewWorkflow(db)
		ids, err := workflow.Pending(screenReviewID, screenReviewer, screenStage)
		if err != nil {
			exitWithError(ExitError, "listing pending papers: %s", err)
		}

		if humanOutput {
			for _, id := range ids {
				outputHuman("%s\n", id)
			}
			return
		}
		outputJSON(map[string]any{
			"review_id": screenReviewID,
			"stage":     screenStage,
			"reviewer":  screenReviewer,
			"paper_ids": ids,
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{screenRecordCmd, screenPendingCmd} {
		c.Flags().StringVar(&screenReviewID, "review", "", "Review ID")
		c.Flags().StringVar(&screenReviewer, "reviewer", "", "Reviewer ID")
		c.Flags().StringVar(&screenStage, "stage", screening.StageTitleAbstract, "Screening stage")
		c.MarkFlagRequired("review")
		c.MarkFlagRequired("reviewer")
	}

	screenRecordCmd.Flags().StringVar(&screenPaperID, "paper", "", "Paper ID")
	screenRecordCmd.Flags().StringVar(&screenDecision, "decision", "", "include, exclude, or maybe")
	screenRecordCmd.Flags().StringVar(&screenRationale, "rationale", "", "Decision rationale (required for exclude)")
	screenRecordCmd.MarkFlagRequired("paper")
	screenRecordCmd.MarkFlagRequired("decision")

	screenCmd.AddCommand(screenRecordCmd)
	screenCmd.AddCommand(screenPendingCmd)
	rootCmd.AddCommand(screenCmd)
}
