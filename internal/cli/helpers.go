package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ClassifyRemote returns the user-facing form of a remote-store failure, or
// nil when err did not come from the transport or the store.
func ClassifyRemote(err error) *remote.RemoteError {
	if err == nil {
		return nil
	}
	var (
		statusErr *remote.StatusError
		urlErr    *url.Error
		netErr    net.Error
	)
	if errors.As(err, &statusErr) || errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return remote.Classify(err)
	}
	return nil
}

// FindStage resolves a stage by id or by case-insensitive name
func FindStage(stages []models.Stage, target string) (models.Stage, error) {
	target = strings.TrimSpace(target)
	if id, err := strconv.Atoi(target); err == nil {
		if s, _, ok := models.FindStage(stages, types.StageID(id)); ok {
			return s, nil
		}
	}
	for _, s := range stages {
		if strings.EqualFold(s.Name, target) {
			return s, nil
		}
	}
	return models.Stage{}, fmt.Errorf("%w: %q", models.ErrStageNotFound, target)
}

// FormatAvailableStages lists stage names in column order
func FormatAvailableStages(stages []models.Stage) string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// FormatPipeline renders an optional pipeline id for humans
func FormatPipeline(id *types.PipelineID, pipelines []models.Pipeline) string {
	if id == nil {
		return "none (legacy deals)"
	}
	for _, p := range pipelines {
		if p.ID == *id {
			return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
		}
	}
	return fmt.Sprintf("#%d", *id)
}

// FormatValue renders a deal amount in a pipeline currency
func FormatValue(value float64, currency string) string {
	if currency == "" {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'f', 0, 64), currency)
}

// LoadBoard resolves the active pipeline and loads its stages and deals. A
// failure is reported through formatter.
func LoadBoard(ctx context.Context, c *CLI, formatter *OutputFormatter) (board.Resolution, error) {
	res, err := c.App.Board.Resolve(ctx)
	if err != nil {
		return res, formatter.RemoteError("BOARD_LOAD_ERROR", err)
	}
	return res, nil
}
