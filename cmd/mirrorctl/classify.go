package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ashureev/mirror/internal/completion"
	"github.com/ashureev/mirror/internal/config"
	"github.com/ashureev/mirror/internal/mirror"
	"github.com/spf13/cobra"
)

var (
	inputFile string
	noDigest  bool
	jsonOut   bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a conversation read from a file or stdin",
	Long: `Reads a request body of the form {"messages": [...]} from --file, or from
stdin when --file is omitted or "-", and prints the classified response.

Crisis content is answered locally without calling the completion service.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readInput(cmd.InOrStdin(), inputFile)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := completion.NewOpenAIClient(completion.OpenAIConfig{
			APIKey:  cfg.Completion.APIKey,
			BaseURL: cfg.Completion.BaseURL,
			Model:   cfg.Completion.Model,
		}, slog.Default())
		if err != nil {
			return err
		}

		pipeline := mirror.NewPipeline(client, mirror.Options{
			IncludeDigest: cfg.Completion.DigestEnabled && !noDigest,
			Params: mirror.CompletionParams{
				MaxTokens:   cfg.Completion.MaxTokens,
				Temperature: cfg.Completion.Temperature,
				JSONObject:  true,
			},
		})
		return runClassify(cmd, pipeline, body)
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&inputFile, "file", "f", "", "request body file (default stdin)")
	classifyCmd.Flags().BoolVar(&noDigest, "no-digest", false, "omit the session digest system message")
	classifyCmd.Flags().BoolVar(&jsonOut, "json", false, "print the raw JSON response")
	rootCmd.AddCommand(classifyCmd)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func runClassify(cmd *cobra.Command, pipeline *mirror.Pipeline, body []byte) error {
	result, err := pipeline.Handle(cmd.Context(), body)
	if err != nil {
		var verr *mirror.ValidationError
		if errors.As(err, &verr) {
			for _, field := range verr.Paths() {
				for _, r := range verr.Fields[field] {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, r)
				}
			}
		}
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Response)
	}

	resp := result.Response
	fmt.Fprintf(out, "Bucket:  %s (%s)\n", resp.Bucket.Label(), resp.Bucket)
	fmt.Fprintf(out, "Crisis:  %t\n", resp.Crisis)
	fmt.Fprintf(out, "Outcome: %s\n\n", result.Outcome)
	fmt.Fprintln(out, resp.Response)
	return nil
}
