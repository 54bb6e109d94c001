package content

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is the full set of collections handed over for one build.
type Snapshot struct {
	Pages    []Entry `yaml:"pages" json:"pages"`
	Posts    []Entry `yaml:"posts" json:"posts"`
	Projects []Entry `yaml:"projects" json:"projects"`
}

// DecodeSnapshot reads a YAML snapshot and tags every entry with the kind of
// the section it was listed under. An empty document yields an empty snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	tag(s.Pages, KindPage)
	tag(s.Posts, KindPost)
	tag(s.Projects, KindProject)
	return s, nil
}

// EncodeSnapshot writes s as YAML.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

func tag(entries []Entry, k Kind) {
	for i := range entries {
		entries[i].Kind = k
	}
}

// ByKind returns the raw entries listed for k.
func (s Snapshot) ByKind(k Kind) []Entry {
	switch k {
	case KindPage:
		return s.Pages
	case KindPost:
		return s.Posts
	case KindProject:
		return s.Projects
	}
	return nil
}

// Entries returns the members of c in snapshot order.
func (s Snapshot) Entries(c Collection) []Entry {
	return c.Members(s.ByKind(c.Kind))
}

// Validate reports entries that break the ingestion contract: a missing or
// unsafe slug, a missing title, or a slug repeated within one kind.
func (s Snapshot) Validate() error {
	var errs []error
	for _, k := range []Kind{KindPage, KindPost, KindProject} {
		seen := make(map[string]struct{})
		for i, e := range s.ByKind(k) {
			if e.Slug == "" {
				errs = append(errs, fmt.Errorf("%s #%d: missing slug", k, i))
				continue
			}
			if err := CheckSlug(e.Slug); err != nil {
				errs = append(errs, fmt.Errorf("%s %q: %w", k, e.Slug, err))
			}
			if e.Title == "" {
				errs = append(errs, fmt.Errorf("%s %q: missing title", k, e.Slug))
			}
			if _, dup := seen[e.Slug]; dup {
				errs = append(errs, fmt.Errorf("%s %q: duplicate slug", k, e.Slug))
			}
			seen[e.Slug] = struct{}{}
		}
	}
	return errors.Join(errs...)
}
