package grid

import (
	"strconv"
	"strings"
)

// CombinationShorthand is the blind-state shorthand that stands for "every
// combination of states across sources".
const CombinationShorthand = "*"

// AllStateCombinations returns the cartesian product of state ids across
// all registered sources, in source-id order.
func (ap *AnalysisPoint) AllStateCombinations() [][]int {
	if len(ap.sources) == 0 {
		return nil
	}
	combos := [][]int{{}}
	for _, src := range ap.sources {
		var next [][]int
		for _, combo := range combos {
			for stateID := range src.States {
				row := append(append([]int{}, combo...), stateID)
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}

// ParseBlindStates parses a textual blind-state specification into a full
// per-hour state table with hours rows.
//
// Each entry holds one state id per source, separated by spaces or commas
// ("0 1 -1"); ExcludedState (-1) removes a source. A single entry is tiled
// across all hours; otherwise the entry count must equal hours. The single
// entry "*" expands to every combination of states across sources, cycled
// over the hours.
func (ap *AnalysisPoint) ParseBlindStates(raw []string, hours int) ([][]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	if len(raw) == 1 && strings.TrimSpace(raw[0]) == CombinationShorthand {
		combos := ap.AllStateCombinations()
		if len(combos) == 0 {
			return nil, &InvalidStateError{
				Spec:   raw[0],
				Reason: "point has no sources to combine",
			}
		}
		table := make([][]int, hours)
		for h := 0; h < hours; h++ {
			table[h] = combos[h%len(combos)]
		}
		return table, nil
	}

	rows := make([][]int, len(raw))
	for i, entry := range raw {
		fields := strings.FieldsFunc(entry, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		})
		if len(fields) != len(ap.sources) {
			return nil, &InvalidStateError{
				Spec: entry,
				Reason: "each entry must hold one state per source (" +
					strconv.Itoa(len(ap.sources)) + ")",
			}
		}
		row := make([]int, len(fields))
		for j, fld := range fields {
			id, err := strconv.Atoi(fld)
			if err != nil {
				return nil, &InvalidStateError{Spec: entry, Reason: "state ids must be integers"}
			}
			if id != ExcludedState && (id < 0 || id >= len(ap.sources[j].States)) {
				return nil, &InvalidStateError{
					Spec: entry,
					Reason: "state id " + strconv.Itoa(id) + " out of range for source " +
						ap.sources[j].Name,
				}
			}
			row[j] = id
		}
		rows[i] = row
	}

	if len(rows) == 1 && hours > 1 {
		table := make([][]int, hours)
		for h := range table {
			table[h] = rows[0]
		}
		return table, nil
	}
	if len(rows) != hours {
		return nil, &InvalidStateError{
			Spec: strings.Join(raw, "; "),
			Reason: "entry count [" + strconv.Itoa(len(rows)) +
				"] must match hour count [" + strconv.Itoa(hours) + "]",
		}
	}
	return rows, nil
}
