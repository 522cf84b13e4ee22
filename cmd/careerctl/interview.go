package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"career-backend/internal/interview"
)

var (
	interviewRole       string
	interviewLevel      string
	interviewTranscript string
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview in the terminal",
	Long:  "Asks questions for the given role and level. Type an answer and press enter; type 'quit' to stop.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newLLM(cmd.Context(), loadConfig())
		if err != nil {
			return err
		}
		transcript, err := runInterview(cmd.Context(), interview.NewService(client), cmd.InOrStdin(), cmd.OutOrStdout(), interviewRole, interviewLevel)
		if interviewTranscript != "" && len(transcript) > 0 {
			if werr := writeTranscript(interviewTranscript, transcript); werr != nil && err == nil {
				err = werr
			}
		}
		return err
	},
}

func init() {
	interviewCmd.Flags().StringVar(&interviewRole, "role", "", "job role to interview for")
	interviewCmd.Flags().StringVar(&interviewLevel, "level", "Mid-level", "experience level (entry, mid, senior)")
	interviewCmd.Flags().StringVar(&interviewTranscript, "transcript", "", "write the conversation as JSON to this file")
	_ = interviewCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(interviewCmd)
}

// runInterview drives the turn loop until EOF or "quit" and returns the transcript so far.
func runInterview(ctx context.Context, svc *interview.Service, in io.Reader, out io.Writer, role, level string) (interview.Transcript, error) {
	var transcript interview.Transcript
	turn, err := svc.Start(ctx, role, level)
	if err != nil {
		return transcript, err
	}
	transcript.AddTurn(turn)
	fmt.Fprintf(out, "Interviewer: %s\n", turn.Question)

	state := interview.TurnInput{JobRole: role, ExperienceLevel: level, PreviousContext: turn.InterviewContext}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return transcript, scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(answer) {
		case "":
			continue
		case "quit", "exit":
			return transcript, nil
		}

		transcript.AddAnswer(answer)
		state.UserResponse = answer
		turn, err = svc.Turn(ctx, state)
		if err != nil {
			return transcript, err
		}
		transcript.AddTurn(turn)
		if turn.Feedback != "" {
			fmt.Fprintf(out, "Feedback: %s\n", turn.Feedback)
		}
		fmt.Fprintf(out, "Interviewer: %s\n", turn.Question)
		state.PreviousContext = turn.InterviewContext
	}
}

func writeTranscript(path string, transcript interview.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	defer f.Close()
	return printJSON(f, transcript)
}
