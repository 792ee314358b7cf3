// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Status is the lifecycle stage of an asset. Transitions within one run are
// monotonic: pending -> in_progress -> completed|failed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// AssetType is the advisory asset class used for poly-budget lookups.
type AssetType string

const (
	TypeHero        AssetType = "hero"
	TypeProp        AssetType = "prop"
	TypeEnvironment AssetType = "environment"
	TypeFoliage     AssetType = "foliage"
)

// Asset is one generation task. ID is unique across the whole manifest.
type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        AssetType `json:"type"`
	Status      Status    `json:"status"`
	StartedAt   string    `json:"startedAt,omitempty"`
	CompletedAt string    `json:"completedAt,omitempty"`
	FailedAt    string    `json:"failedAt,omitempty"`
	OutputPath  string    `json:"outputPath,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Region is a thematic grouping of assets sharing a palette. Palette order
// is positional: 0=primary, 1=secondary, 2=accent, 3=dark.
type Region struct {
	Theme   string   `json:"theme"`
	Palette []string `json:"palette"`
	Assets  []*Asset `json:"assets"`
}

// ArtDirection carries advisory style context. PolyBudget maps an asset type
// to a budget-range string (e.g. "2000-4000"). Never enforced numerically.
type ArtDirection struct {
	Style      string            `json:"style,omitempty"`
	PolyBudget map[string]string `json:"polyBudget,omitempty"`
}

// RegionMap is an insertion-ordered map of regionId to Region. The manifest
// document stores regions as a JSON object whose key order is semantic (it
// defines FIFO scheduling order), so plain map[string]*Region cannot be used.
type RegionMap struct {
	order   []string
	regions map[string]*Region
}

// Add appends a region under id, replacing any existing entry in place.
func (rm *RegionMap) Add(id string, r *Region) {
	if rm.regions == nil {
		rm.regions = make(map[string]*Region)
	}
	if _, exists := rm.regions[id]; !exists {
		rm.order = append(rm.order, id)
	}
	rm.regions[id] = r
}

// Get returns the region stored under id, or nil.
func (rm *RegionMap) Get(id string) *Region {
	return rm.regions[id]
}

// Keys returns the region ids in document order.
func (rm *RegionMap) Keys() []string {
	return rm.order
}

// Len returns the number of regions.
func (rm *RegionMap) Len() int { return len(rm.order) }

// MarshalJSON writes the regions as a JSON object in insertion order.
func (rm *RegionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range rm.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(rm.regions[id])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, capturing key order via the token stream.
func (rm *RegionMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("regions: expected JSON object, got %v", tok)
	}
	rm.order = nil
	rm.regions = make(map[string]*Region)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("regions: expected string key, got %v", keyTok)
		}
		var r Region
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("region %q: %w", key, err)
		}
		rm.Add(key, &r)
	}
	return nil
}

// Manifest is the root persisted document: all generation tasks grouped by
// region, plus advisory art direction.
type Manifest struct {
	ArtDirection *ArtDirection `json:"artDirection,omitempty"`
	Regions      RegionMap     `json:"regions"`
}

// AssetUpdate carries the optional fields merged into an asset alongside a
// status change. Nil fields are left untouched.
type AssetUpdate struct {
	StartedAt   *string
	CompletedAt *string
	FailedAt    *string
	OutputPath  *string
	Error       *string
}

func (u AssetUpdate) apply(a *Asset) {
	if u.StartedAt != nil {
		a.StartedAt = *u.StartedAt
	}
	if u.CompletedAt != nil {
		a.CompletedAt = *u.CompletedAt
	}
	if u.FailedAt != nil {
		a.FailedAt = *u.FailedAt
	}
	if u.OutputPath != nil {
		a.OutputPath = *u.OutputPath
	}
	if u.Error != nil {
		a.Error = *u.Error
	}
}

// Store is the only persistence layer: durable load/save of the manifest
// document at a fixed path. Mutations are whole-document read-modify-write
// guarded by an in-process mutex; a single writer per manifest file across
// processes is a documented precondition.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store for the manifest document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest file location.
func (s *Store) Path() string { return s.path }

// Load reads and parses the manifest document.
func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, manifestErrorf("reading %s: %v", s.path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, manifestErrorf("parsing %s: %v", s.path, err)
	}
	return &m, nil
}

// Save serializes the manifest deterministically (stable key order,
// two-space indent) and replaces the document wholesale. The write goes
// through a temp file and rename so a crash never leaves a partial document.
func (s *Store) Save(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return manifestErrorf("serializing manifest: %v", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return manifestErrorf("creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return manifestErrorf("writing %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return manifestErrorf("closing %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return manifestErrorf("replacing %s: %v", s.path, err)
	}
	return nil
}

// Mutate runs fn against a freshly loaded manifest under the store lock and
// saves when fn reports a change. Used for bulk mutations like reclaim.
func (s *Store) Mutate(fn func(m *Manifest) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Load()
	if err != nil {
		return err
	}
	if !fn(m) {
		return nil
	}
	return s.Save(m)
}

// UpdateAssetStatus reloads the manifest, scans regions then assets in
// stored order for a matching id, sets the status, merges the update, and
// saves. Returns whether a match was found; an unknown id is a silent no-op
// (false, nil) with no write.
func (s *Store) UpdateAssetStatus(id string, status Status, update AssetUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, regionID := range m.Regions.Keys() {
		for _, a := range m.Regions.Get(regionID).Assets {
			if a.ID != id {
				continue
			}
			a.Status = status
			update.apply(a)
			if err := s.Save(m); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
