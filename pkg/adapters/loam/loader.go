package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/wizard"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository of markdown step documents to ports.StepLoader.
// Steps are ordered by document path, so a numeric file prefix
// (01-new.md, 02-review.md) fixes the wizard order.
type Loader struct {
	Repo *loam.TypedRepository[StepMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[StepMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Steps implements ports.StepLoader.
func (l *Loader) Steps(ctx context.Context) ([]domain.StepDefinition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return filepath.ToSlash(docs[i].ID) < filepath.ToSlash(docs[j].ID)
	})

	seen := make(map[string]string)
	defs := make([]domain.StepDefinition, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: step '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		label := strings.TrimSpace(doc.Data.Label)
		if label == "" {
			return nil, fmt.Errorf("step '%s' has no label", id)
		}

		nav, err := decodeNav(doc.Data.Nav)
		if err != nil {
			return nil, fmt.Errorf("step '%s': %w", id, err)
		}

		defs = append(defs, domain.StepDefinition{
			ID:    id,
			Label: label,
			Nav:   nav,
		})
	}
	return defs, nil
}

// decodeNav turns the raw nav map into controls, filling the same defaults
// as wizard.Nav.
func decodeNav(raw map[string]any) (domain.Navigation, error) {
	var decoded domain.Navigation
	if len(raw) == 0 {
		return decoded, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Navigation{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Navigation{}, fmt.Errorf("invalid nav: %w", err)
	}

	b := wizard.Nav()
	if decoded.HasNext {
		b.Next(decoded.NextLabel, decoded.NextVariant)
	}
	if decoded.HasBack {
		b.Back()
	}
	if decoded.HasFinish {
		b.Finish(decoded.FinishLabel)
	}
	return b.Build(), nil
}

// Watch emits the ID of every changed step document until ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
