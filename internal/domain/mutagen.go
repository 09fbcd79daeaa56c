// Package domain contains the fuzzing workflow: the document sweep, target
// execution, outcome classification and the run controller.
package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/mouse-blink/tqfuzz/internal/adapter"
	"github.com/mouse-blink/tqfuzz/internal/domain/mutagens"
	m "github.com/mouse-blink/tqfuzz/internal/model"
)

const (
	artifactExt = ".tqf"
	outputExt   = ".xml"
)

// Visit runs, classifies and logs one mutant. The mutated field is restored
// after Visit returns, whatever it returns.
type Visit func(ctx context.Context, attempt m.MutationAttempt) error

// SweepStats counts what one sweep produced.
type SweepStats struct {
	Mutants int
	Skipped int
}

// Layout names the files of a run.
type Layout struct {
	Scratch m.Path // serialized mutants
	OutDir  m.Path // target responses
	Prefix  string
}

// Artifact returns the path of the mutant numbered seq.
func (l Layout) Artifact(seq uint64) m.Path {
	return m.Path(filepath.Join(string(l.Scratch), fmt.Sprintf("%s_%d%s", l.Prefix, seq, artifactExt)))
}

// Output returns where the target writes its response to mutant seq.
func (l Layout) Output(seq uint64) m.Path {
	return m.Path(filepath.Join(string(l.OutDir), fmt.Sprintf("%s_%d%s", l.Prefix, seq, outputExt)))
}

// Mutagen drives one mutator across every eligible leaf of a document.
type Mutagen interface {
	// Sweep visits the document depth-first in document order. For each leaf
	// the mutator applies to, it mutates the leaf, writes the whole document
	// to a numbered artifact, calls visit and restores the leaf.
	Sweep(ctx context.Context, doc *etree.Document, mutator mutagens.Mutator, visit Visit) (SweepStats, error)

	// Estimate counts, per mutator name, the leaves each mutator applies to.
	Estimate(doc *etree.Document, mutators []mutagens.Mutator) map[string]int
}

type mutagen struct {
	fs     adapter.FSAdapter
	docs   adapter.DocumentAdapter
	seq    *Sequence
	layout Layout
}

// NewMutagen creates a Mutagen numbering its artifacts from seq.
func NewMutagen(fs adapter.FSAdapter, docs adapter.DocumentAdapter, seq *Sequence, layout Layout) Mutagen {
	return &mutagen{
		fs:     fs,
		docs:   docs,
		seq:    seq,
		layout: layout,
	}
}

func (mg *mutagen) Sweep(ctx context.Context, doc *etree.Document, mutator mutagens.Mutator, visit Visit) (SweepStats, error) {
	var stats SweepStats

	root := doc.Root()
	if root == nil {
		return stats, fmt.Errorf("document has no root element")
	}

	err := walkLeaves(root, "/"+positionStep(root, 1), func(el *etree.Element, position string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return mg.mutateLeaf(ctx, doc, el, position, mutator, visit, &stats)
	})

	return stats, err
}

func (mg *mutagen) mutateLeaf(
	ctx context.Context,
	doc *etree.Document,
	el *etree.Element,
	position string,
	mutator mutagens.Mutator,
	visit Visit,
	stats *SweepStats,
) error {
	original := el.Text()

	mutated, ok := mutator.Apply(el.Tag, original).Text()
	if !ok {
		stats.Skipped++
		return nil
	}

	defer el.SetText(original)

	seq := mg.seq.Next()
	attempt := m.MutationAttempt{
		Seq:      seq,
		Mutator:  mutator.Name,
		Field:    el.Tag,
		Position: position,
		Original: original,
		Mutated:  mutated,
		Artifact: mg.layout.Artifact(seq),
		Output:   mg.layout.Output(seq),
	}

	content, err := mg.docs.SerializeMutant(doc, el, mutated)
	if err != nil {
		return err
	}

	if err := mg.fs.WriteFile(attempt.Artifact, content, 0o600); err != nil {
		return fmt.Errorf("failed to write mutant %s: %w", attempt.Artifact, err)
	}

	stats.Mutants++

	return visit(ctx, attempt)
}

func (mg *mutagen) Estimate(doc *etree.Document, mutators []mutagens.Mutator) map[string]int {
	counts := make(map[string]int, len(mutators))
	for _, mutator := range mutators {
		counts[mutator.Name] = 0
	}

	root := doc.Root()
	if root == nil {
		return counts
	}

	_ = walkLeaves(root, "/"+positionStep(root, 1), func(el *etree.Element, _ string) error {
		for _, mutator := range mutators {
			if _, ok := mutator.Apply(el.Tag, el.Text()).Text(); ok {
				counts[mutator.Name]++
			}
		}

		return nil
	})

	return counts
}

// walkLeaves calls fn for every eligible element below and including el,
// depth-first in document order. Descent continues below every element.
func walkLeaves(el *etree.Element, position string, fn func(el *etree.Element, position string) error) error {
	if isEligible(el) {
		if err := fn(el, position); err != nil {
			return err
		}
	}

	seen := make(map[string]int)

	for _, child := range el.ChildElements() {
		tag := child.FullTag()
		seen[tag]++

		if err := walkLeaves(child, position+"/"+positionStep(child, seen[tag]), fn); err != nil {
			return err
		}
	}

	return nil
}

// isEligible reports whether el is a leaf carrying non-blank text.
func isEligible(el *etree.Element) bool {
	return len(el.ChildElements()) == 0 && strings.TrimSpace(el.Text()) != ""
}

func positionStep(el *etree.Element, index int) string {
	return fmt.Sprintf("%s[%d]", el.FullTag(), index)
}
