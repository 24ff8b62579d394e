package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Fields is the payload of a successful command. Every key becomes a
// top-level member of the JSON result, next to "success".
type Fields map[string]any

// Result writes a successful command result as {"success":true,...fields}
func (f *OutputFormatter) Result(fields Fields) error {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	return json.NewEncoder(os.Stdout).Encode(out)
}

// IDs prints one id per line, the quiet form of list and move output
func (f *OutputFormatter) IDs(ids []int) error {
	for _, id := range ids {
		if _, err := fmt.Printf("%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// RemoteError reports a remote-store failure with its hint as the suggestion
// and returns err wrapped with the matching exit code.
func (f *OutputFormatter) RemoteError(code string, err error) error {
	msg, hint := err.Error(), ""
	if re := ClassifyRemote(err); re != nil {
		msg, hint = re.Message, re.Hint
	}
	if fmtErr := f.ErrorWithSuggestion(code, msg, hint); fmtErr != nil {
		return fmtErr
	}
	return Exit(ExitCodeFor(err), err)
}
