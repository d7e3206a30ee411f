package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/pixel-clicker-go/domain/match"
	"github.com/soocke/pixel-clicker-go/domain/pixel"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

var matchThreshold string

var matchCmd = &cobra.Command{
	Use:   "match <screenshot> <reference>",
	Short: "Score a reference image against a screenshot file",
	Long: `match runs the same normalized cross-correlation used while monitoring
and prints the best score, its top-left location and the point that would be
clicked. Useful for tuning a target's confidence.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := target.ParseThreshold(matchThreshold)
		if err != nil {
			return err
		}
		frameImg, err := target.LoadImage(args[0])
		if err != nil {
			return err
		}
		refImg, err := target.LoadImage(args[1])
		if err != nil {
			return err
		}
		frame, ref := pixel.FromImageColor(frameImg), pixel.FromImageColor(refImg)
		res, err := match.New().Score(frame, ref)
		if err != nil {
			return err
		}
		pt := match.ClickPoint(res.Loc, ref, frameImg.Bounds().Min)
		verdict := "below threshold"
		if res.Score >= threshold {
			verdict = "match"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "score=%.4f location=(%d, %d) click=(%d, %d) %s\n",
			res.Score, res.Loc.X, res.Loc.Y, pt.X, pt.Y, verdict)
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchThreshold, "confidence", target.DefaultConfidenceText, "confidence a score must reach to count as a match")
	rootCmd.AddCommand(matchCmd)
}
