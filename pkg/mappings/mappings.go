// Package mappings implements the lookup tables attached to an interaction
// graph: ontology term membership, term and metabolite display names, the
// tissue → expression-index mapping and the gene → proteins mapping.
//
// Tables load lazily from snapshot files on first access and are immutable
// afterwards. A Store is safe for concurrent readers: initialization is
// mutex-guarded, idempotent and first-load-wins.
//
// Ontology member tables are kept in btrees ordered by term id, so iteration
// order is deterministic, and so is everything derived from it, like ranking
// tie-breaks.
package mappings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/tidwall/btree"

	"github.com/interactome/biographdb/pkg/persistence"
)

// Ontology names a GO annotation category.
type Ontology string

const (
	BiologicalProcesses Ontology = "biological_processes"
	CellComponents      Ontology = "cell_components"
	MolecularFunctions  Ontology = "molecular_functions"
)

// Ontologies returns the three categories in their canonical order.
func Ontologies() []Ontology {
	return []Ontology{BiologicalProcesses, CellComponents, MolecularFunctions}
}

// Valid reports whether o is a known category.
func (o Ontology) Valid() bool {
	switch o {
	case BiologicalProcesses, CellComponents, MolecularFunctions:
		return true
	}
	return false
}

var (
	// ErrUnknownMapping is returned when a table or ontology category name
	// is not recognized.
	ErrUnknownMapping = errors.New("unknown mapping table")
	// ErrUnknownTissue is returned when a tissue name is not present in the
	// tissue index.
	ErrUnknownTissue = errors.New("unknown tissue")
)

// Snapshot file names inside the mappings directory.
const (
	fileBiologicalProcesses = "biological_processes_union.snap"
	fileCellComponents      = "cell_components_union.snap"
	fileMolecularFunctions  = "molecular_functions_union.snap"
	fileGoNames             = "go_to_name.snap"
	fileCovidGoNames        = "covid_go_to_name.snap"
	fileMetaboliteNames     = "metabolites_id_to_name.snap"
	fileTissueIndex         = "tissue_num_mapping.snap"
	fileGeneToProteins      = "gene_to_proteins.snap"
)

// MemberTable is an ordered ontology-term → member-proteins table.
type MemberTable = btree.Map[string, []string]

// Store owns the lazy mapping-table cache of one graph instance.
type Store struct {
	dir string

	mu           sync.Mutex
	members      map[Ontology]*MemberTable
	goNames      map[string]string
	covidGoNames map[string]string
	metNames     map[string]string
	tissueIndex  map[string]int
	tissues      []string // tissue names by expression index
	genes        map[string][]string
}

// Open prepares a store backed by snapshot files in dir. No file is read
// until a table is first used.
func Open(dir string) *Store {
	return &Store{dir: dir, members: make(map[Ontology]*MemberTable)}
}

// Tables is the fully materialized content of a store, used to build one in
// memory (tests, embedding) and to write the snapshot files.
type Tables struct {
	BiologicalProcesses map[string][]string
	CellComponents      map[string][]string
	MolecularFunctions  map[string][]string
	GoNames             map[string]string
	CovidGoNames        map[string]string
	MetaboliteNames     map[string]string
	TissueIndex         map[string]int
	GeneToProteins      map[string][]string
}

// FromTables builds a fully loaded store with no file backing.
func FromTables(t Tables) *Store {
	s := &Store{
		members:      make(map[Ontology]*MemberTable),
		goNames:      orEmpty(t.GoNames),
		covidGoNames: orEmpty(t.CovidGoNames),
		metNames:     orEmpty(t.MetaboliteNames),
		tissueIndex:  make(map[string]int),
		genes:        t.GeneToProteins,
	}
	if s.genes == nil {
		s.genes = map[string][]string{}
	}
	s.members[BiologicalProcesses] = buildTable(t.BiologicalProcesses)
	s.members[CellComponents] = buildTable(t.CellComponents)
	s.members[MolecularFunctions] = buildTable(t.MolecularFunctions)
	for name, ix := range t.TissueIndex {
		s.tissueIndex[name] = ix
	}
	s.tissues = invertTissueIndex(s.tissueIndex)
	return s
}

// Save writes all tables as snapshot files into dir. It forces a full load
// of a file-backed store first.
func (s *Store) Save(dir string) error {
	for _, cat := range Ontologies() {
		tbl, err := s.Members(cat)
		if err != nil {
			return err
		}
		flat := make(map[string][]string, tbl.Len())
		tbl.Scan(func(term string, members []string) bool {
			flat[term] = members
			return true
		})
		if err := persistence.Save(filepath.Join(dir, memberFile(cat)), flat); err != nil {
			return err
		}
	}
	if err := s.loadNames(); err != nil {
		return err
	}
	if err := s.loadTissues(); err != nil {
		return err
	}
	if err := s.loadGenes(); err != nil {
		return err
	}
	for file, table := range map[string]any{
		fileGoNames:         s.goNames,
		fileCovidGoNames:    s.covidGoNames,
		fileMetaboliteNames: s.metNames,
		fileTissueIndex:     s.tissueIndex,
		fileGeneToProteins:  s.genes,
	} {
		if err := persistence.Save(filepath.Join(dir, file), table); err != nil {
			return err
		}
	}
	return nil
}

// Members returns the ordered member table of an ontology category.
func (s *Store) Members(cat Ontology) (*MemberTable, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMapping, cat)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tbl, ok := s.members[cat]; ok {
		return tbl, nil
	}
	var flat map[string][]string
	if err := persistence.Load(filepath.Join(s.dir, memberFile(cat)), &flat); err != nil {
		return nil, fmt.Errorf("mappings: load %s: %w", cat, err)
	}
	tbl := buildTable(flat)
	s.members[cat] = tbl
	return tbl, nil
}

// TermMembers resolves a GO term id to its member proteins, looking across
// all three categories. In well-formed data a term id belongs to exactly one
// category; if several tables carry it the last category in canonical order
// wins. Unknown terms yield an empty result.
func (s *Store) TermMembers(term string) ([]string, error) {
	var out []string
	for _, cat := range Ontologies() {
		tbl, err := s.Members(cat)
		if err != nil {
			return nil, err
		}
		if members, ok := tbl.Get(term); ok {
			out = members
		}
	}
	return out, nil
}

// TermName resolves a GO term id to its display name, falling back to the
// raw id when the data set carries no curated name for it.
func (s *Store) TermName(goID string) (string, error) {
	if err := s.loadNames(); err != nil {
		return "", err
	}
	if name, ok := s.goNames[goID]; ok {
		return name, nil
	}
	if name, ok := s.covidGoNames[goID]; ok {
		return name, nil
	}
	return goID, nil
}

// MetaboliteName resolves an HMDB metabolite id to its display name, falling
// back to the raw id.
func (s *Store) MetaboliteName(id string) (string, error) {
	if err := s.loadNames(); err != nil {
		return "", err
	}
	if name, ok := s.metNames[id]; ok {
		return name, nil
	}
	return id, nil
}

// TissueIndex resolves a tissue name to its index in the expression vectors.
func (s *Store) TissueIndex(name string) (int, error) {
	if err := s.loadTissues(); err != nil {
		return 0, err
	}
	ix, ok := s.tissueIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTissue, name)
	}
	return ix, nil
}

// Tissues returns the tissue names ordered by expression index.
func (s *Store) Tissues() ([]string, error) {
	if err := s.loadTissues(); err != nil {
		return nil, err
	}
	return s.tissues, nil
}

// NumTissues returns the width of the expression vectors.
func (s *Store) NumTissues() (int, error) {
	t, err := s.Tissues()
	return len(t), err
}

// ProteinsForGene resolves a gene symbol to its protein accessions.
// Unknown genes yield an empty result.
func (s *Store) ProteinsForGene(gene string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureGenes(); err != nil {
		return nil, err
	}
	return s.genes[gene], nil
}

func (s *Store) loadNames() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureNames()
}

func (s *Store) loadTissues() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureTissues()
}

func (s *Store) loadGenes() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureGenes()
}

// ensureNames loads the three id → display-name tables. Caller holds mu.
func (s *Store) ensureNames() error {
	if s.goNames != nil {
		return nil
	}
	var goNames, covidNames, metNames map[string]string
	if err := persistence.Load(filepath.Join(s.dir, fileGoNames), &goNames); err != nil {
		return fmt.Errorf("mappings: load go names: %w", err)
	}
	if err := persistence.Load(filepath.Join(s.dir, fileCovidGoNames), &covidNames); err != nil {
		return fmt.Errorf("mappings: load covid go names: %w", err)
	}
	if err := persistence.Load(filepath.Join(s.dir, fileMetaboliteNames), &metNames); err != nil {
		return fmt.Errorf("mappings: load metabolite names: %w", err)
	}
	s.goNames = orEmpty(goNames)
	s.covidGoNames = orEmpty(covidNames)
	s.metNames = orEmpty(metNames)
	return nil
}

// ensureTissues loads the tissue index and its inverse. Caller holds mu.
func (s *Store) ensureTissues() error {
	if s.tissueIndex != nil {
		return nil
	}
	var idx map[string]int
	if err := persistence.Load(filepath.Join(s.dir, fileTissueIndex), &idx); err != nil {
		return fmt.Errorf("mappings: load tissue index: %w", err)
	}
	if idx == nil {
		idx = map[string]int{}
	}
	s.tissueIndex = idx
	s.tissues = invertTissueIndex(idx)
	return nil
}

// ensureGenes loads the gene → proteins table. Caller holds mu.
func (s *Store) ensureGenes() error {
	if s.genes != nil {
		return nil
	}
	var genes map[string][]string
	if err := persistence.Load(filepath.Join(s.dir, fileGeneToProteins), &genes); err != nil {
		return fmt.Errorf("mappings: load gene table: %w", err)
	}
	if genes == nil {
		genes = map[string][]string{}
	}
	s.genes = genes
	return nil
}

func memberFile(cat Ontology) string {
	switch cat {
	case BiologicalProcesses:
		return fileBiologicalProcesses
	case CellComponents:
		return fileCellComponents
	default:
		return fileMolecularFunctions
	}
}

func buildTable(flat map[string][]string) *MemberTable {
	var tbl MemberTable
	for term, members := range flat {
		tbl.Set(term, members)
	}
	return &tbl
}

func invertTissueIndex(idx map[string]int) []string {
	max := -1
	for _, ix := range idx {
		if ix > max {
			max = ix
		}
	}
	tissues := make([]string, max+1)
	for name, ix := range idx {
		if ix >= 0 {
			tissues[ix] = name
		}
	}
	return tissues
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
