package roster

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/football-archive/pipeline/internal/domain/player"
	"github.com/football-archive/pipeline/internal/platform/tabular"
	"github.com/football-archive/pipeline/internal/platform/textnorm"
)

const DefaultCollectSeparator = " / "

var shirtNumberRe = regexp.MustCompile(`^(?:no\.?|#)?\s*\d{1,3}\.?$`)

// DefaultSectionLabels are the group headings that close an open block
// even though they name a position.
var DefaultSectionLabels = []string{
	"goalkeepers", "defenders", "midfielders", "midfield", "forwards",
	"attackers", "strikers", "staff", "reserves", "loans", "on loan",
	"ゴールキーパー陣", "ディフェンダー陣", "ミッドフィルダー陣", "フォワード陣",
}

var noNumberSentinels = map[string]struct{}{
	"-":   {},
	"—":   {},
	"―":   {},
	"なし":  {},
	"n/a": {},
	"tbd": {},
}

// FieldRule maps one output field to the source columns it is read from,
// in priority order.
type FieldRule struct {
	Name    string
	Columns []string
	// Collect unions every distinct non-empty value across the block
	// instead of taking the first one.
	Collect bool
}

// BlockConfig describes a block-format spreadsheet export.
type BlockConfig struct {
	StartColumn string
	Fields      []FieldRule
	Separator   string
	// PositionSkipColumns are never read as position labels, typically the
	// name columns.
	PositionSkipColumns []string
	// SectionLabels are headings that always act as section markers. Inside
	// an open block any other position label alone in the start column is
	// a continuation row. Nil means DefaultSectionLabels.
	SectionLabels []string
}

// Block is one merged player record.
type Block struct {
	Rows     []tabular.Row
	Fields   map[string]string
	Position player.Position
	// Section is the raw label of the section marker the block sits under.
	Section string
}

func (b Block) Get(name string) string {
	return b.Fields[name]
}

type mergeState int

const (
	stateAwaitingStart mergeState = iota
	stateInBlock
)

// BlockMerger folds a row stream into blocks. Feed rows with Push and call
// Flush once the stream ends.
type BlockMerger struct {
	header     []string
	cfg        BlockConfig
	skip       map[string]struct{}
	sections   map[string]struct{}
	state      mergeState
	rows       []tabular.Row
	section    string
	sectionPos player.Position
}

func NewBlockMerger(header []string, cfg BlockConfig) *BlockMerger {
	if cfg.Separator == "" {
		cfg.Separator = DefaultCollectSeparator
	}
	if cfg.SectionLabels == nil {
		cfg.SectionLabels = DefaultSectionLabels
	}
	skip := make(map[string]struct{}, len(cfg.PositionSkipColumns))
	for _, col := range cfg.PositionSkipColumns {
		skip[col] = struct{}{}
	}
	sections := make(map[string]struct{}, len(cfg.SectionLabels))
	for _, label := range cfg.SectionLabels {
		if folded := textnorm.FoldKey(label); folded != "" {
			sections[folded] = struct{}{}
		}
	}
	return &BlockMerger{
		header:   header,
		cfg:      cfg,
		skip:     skip,
		sections: sections,
		state:    stateAwaitingStart,
	}
}

// Push consumes one row. When the row closes the current block, the merged
// block is returned with ok set.
func (m *BlockMerger) Push(row tabular.Row) (Block, bool) {
	switch {
	case m.isSectionMarker(row):
		block, ok := m.Flush()
		m.section = textnorm.Text(row.Get(m.cfg.StartColumn))
		m.sectionPos = player.NormalizePosition(m.section)
		return block, ok
	case IsStartToken(row.Get(m.cfg.StartColumn)):
		block, ok := m.Flush()
		m.rows = append(m.rows, row)
		m.state = stateInBlock
		return block, ok
	case m.state == stateInBlock:
		m.rows = append(m.rows, row)
	}
	return Block{}, false
}

// Flush closes the open block, if any.
func (m *BlockMerger) Flush() (Block, bool) {
	if m.state != stateInBlock {
		return Block{}, false
	}
	block := m.merge(m.rows)
	m.rows = nil
	m.state = stateAwaitingStart
	return block, true
}

func (m *BlockMerger) isSectionMarker(row tabular.Row) bool {
	label := textnorm.Text(row.Get(m.cfg.StartColumn))
	if label == "" || IsStartToken(label) {
		return false
	}
	for _, col := range m.header {
		if col == m.cfg.StartColumn {
			continue
		}
		if textnorm.Text(row.Get(col)) != "" {
			return false
		}
	}
	if m.state != stateInBlock {
		return true
	}
	if _, ok := m.sections[textnorm.FoldKey(label)]; ok {
		return true
	}
	return player.NormalizePosition(label) == ""
}

func (m *BlockMerger) merge(rows []tabular.Row) Block {
	block := Block{
		Rows:    rows,
		Fields:  make(map[string]string, len(m.cfg.Fields)),
		Section: m.section,
	}

	for _, rule := range m.cfg.Fields {
		if rule.Collect {
			block.Fields[rule.Name] = collectDistinct(rows, rule.Columns, m.cfg.Separator)
			continue
		}
		block.Fields[rule.Name] = firstNonEmpty(rows, rule.Columns)
	}

	block.Position = m.scanPosition(rows)
	if block.Position == "" {
		block.Position = m.sectionPos
	}
	return block
}

func (m *BlockMerger) scanPosition(rows []tabular.Row) player.Position {
	for _, row := range rows {
		for _, col := range m.header {
			if _, skip := m.skip[col]; skip {
				continue
			}
			if col == m.cfg.StartColumn && IsStartToken(row.Get(col)) {
				continue
			}
			if pos := player.NormalizePosition(row.Get(col)); pos != "" {
				return pos
			}
		}
	}
	return ""
}

func firstNonEmpty(rows []tabular.Row, columns []string) string {
	for _, col := range columns {
		for _, row := range rows {
			if v := textnorm.Text(row.Get(col)); v != "" {
				return v
			}
		}
	}
	return ""
}

func collectDistinct(rows []tabular.Row, columns []string, sep string) string {
	seen := make(map[string]struct{})
	var values []string
	for _, col := range columns {
		for _, row := range rows {
			v := textnorm.Text(row.Get(col))
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	return strings.Join(values, sep)
}

// IsStartToken reports whether a start-column cell opens a new block: a
// shirt number ("7", "#7", "No.7", full-width digits) or a no-number
// sentinel.
func IsStartToken(cell string) bool {
	token := textnorm.FoldKey(cell)
	if token == "" {
		return false
	}
	if _, ok := noNumberSentinels[token]; ok {
		return true
	}
	return shirtNumberRe.MatchString(token)
}

// ShirtNumber returns the digits of a start token, or "" for sentinels.
func ShirtNumber(cell string) string {
	token := textnorm.FoldKey(cell)
	if !shirtNumberRe.MatchString(token) {
		return ""
	}
	n, err := strconv.Atoi(strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, token))
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// MergeBlocks runs a whole table through a BlockMerger.
func MergeBlocks(table tabular.Table, cfg BlockConfig) []Block {
	merger := NewBlockMerger(table.Header, cfg)
	var blocks []Block
	for _, row := range table.Rows {
		if block, ok := merger.Push(row); ok {
			blocks = append(blocks, block)
		}
	}
	if block, ok := merger.Flush(); ok {
		blocks = append(blocks, block)
	}
	return blocks
}
