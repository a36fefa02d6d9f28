// Package catalog loads the FAQ catalog the matcher runs against.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"faq-bot/internal/domain"
)

// Getter reads a named parameter, e.g. from SSM Parameter Store.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Source is a named way of producing the catalog.
type Source struct {
	Name string
	Load func(ctx context.Context) ([]domain.FAQ, error)
}

// FileSource reads a JSON array of {question, answer} objects from path.
func FileSource(path string) Source {
	return Source{
		Name: "file:" + path,
		Load: func(context.Context) ([]domain.FAQ, error) {
			return ReadFile(path)
		},
	}
}

// ParamSource reads the same JSON document from a parameter store entry.
func ParamSource(getter Getter, name string) Source {
	return Source{
		Name: "param:" + name,
		Load: func(ctx context.Context) ([]domain.FAQ, error) {
			if getter == nil {
				return nil, errors.New("catalog: parameter getter must not be nil")
			}
			raw, err := getter.GetParameter(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("catalog: read parameter: %w", err)
			}
			return Parse([]byte(raw))
		},
	}
}

// Load runs src and never fails: any error is logged and an empty catalog
// is returned so the service keeps answering with the fallback reply.
func Load(ctx context.Context, logger *slog.Logger, src Source) []domain.FAQ {
	if logger == nil {
		logger = slog.Default()
	}
	if src.Load == nil {
		logger.Error("catalog source is not configured", "source", src.Name)
		return []domain.FAQ{}
	}
	faqs, err := src.Load(ctx)
	if err != nil {
		logger.Error("failed to load FAQ catalog, continuing with an empty catalog", "source", src.Name, "err", err)
		return []domain.FAQ{}
	}
	logger.Info("loaded FAQ catalog", "source", src.Name, "items", len(faqs))
	return faqs
}

func ReadFile(path string) ([]domain.FAQ, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a JSON catalog, keeping order and dropping entries whose
// question or answer is blank.
func Parse(raw []byte) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	if err := json.Unmarshal(raw, &faqs); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	out := make([]domain.FAQ, 0, len(faqs))
	for _, f := range faqs {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
