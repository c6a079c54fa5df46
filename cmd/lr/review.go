package main

import (
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage literature review projects",
}

var (
	reviewName      string
	reviewQuestion  string
	reviewCriteria  []string
	reviewReviewers []string
	reviewStrategy  string
)

var reviewCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new review project",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		id, err := db.CreateReview(reviewName, reviewQuestion, reviewCriteria, reviewReviewers, reviewStrategy)
		if err != nil {
			exitWithError(ExitError, "creating review: %s", err)
		}

		if humanOutput {
			outputHuman("created review %s\n", id)
			return
		}
		outputJSON(map[string]string{"review_id": id})
	},
}

var reviewPapersCmd = &cobra.Command{
	Use:   "papers <review-id>",
	Short: "List papers linked to a review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		defer db.Close()

		ids, err := db.ReviewPapers(args[0])
		if err != nil {
			exitWithError(ExitError, "listing papers: %s", err)
		}

		if humanOutput {
			for _, id := range ids {
				outputHuman("%s\n", id)
			}
			return
		}
		outputJSON(map[string]any{"review_id": args[0], "paper_ids": ids})
	},
}

func init() {
	reviewCreateCmd.Flags().StringVar(&reviewName, "name", "", "Review name")
	reviewCreateCmd.Flags().StringVar(&reviewQuestion, "question", "", "Research question")
	reviewCreateCmd.Flags().StringSliceVar(&reviewCriteria, "criteria", nil, "Inclusion criteria (repeatable)")
	reviewCreateCmd.Flags().StringSliceVar(&reviewReviewers, "reviewer", nil, "Reviewer IDs (repeatable)")
	reviewCreateCmd.Flags().StringVar(&reviewStrategy, "strategy", "", "Search strategy description")
	reviewCreateCmd.MarkFlagRequired("name")
	reviewCreateCmd.MarkFlagRequired("question")

	reviewCmd.AddCommand(reviewCreateCmd)
	reviewCmd.AddCommand(reviewPapersCmd)
	rootCmd.AddCommand(reviewCmd)
}
