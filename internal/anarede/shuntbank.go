package anarede

import (
	"strconv"
	"strings"

	"pwfconv/internal/diag"
	"pwfconv/internal/domain"
)

// DBSH is the one irregular, multi-line section: each shunt bank is a
// header line followed by per-group bank lines and a literal FBAN
// terminator, repeating until the section sentinel. Its columns are part of
// the block grammar rather than the regular schema.
const bankTerminator = "FBAN"

// column returns the 1-based inclusive column range of a line, clamped and
// trimmed, or "" when the range lies past the end.
func column(line string, start, end int) string {
	if start-1 >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start-1 : end])
}

// columnFrom returns everything from the 1-based column to end of line.
func columnFrom(line string, start int) string {
	if start-1 >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[start-1:])
}

// parseShuntBankSection consumes the remainder of a DBSH section starting
// at the given header line. It returns when the next meaningful line is the
// section sentinel or document terminator, leaving that line unconsumed so
// the scanner can handle the state transition.
func parseShuntBankSection(cur *lineCursor, line string, d *diag.Sink) []domain.ShuntBank {
	var banks []domain.ShuntBank

	for {
		head, err := strconv.Atoi(column(line, 1, 5))
		if err != nil {
			d.Warnf("shunt bank header has no bus number: %q", line)
			var ok bool
			line, ok = nextBankHeader(cur)
			if !ok {
				return banks
			}
			continue
		}
		// The sentinel can land where a bus number is expected; it is
		// numeric data here, not a literal line match.
		if head == int(sectionSentinelValue) {
			return banks
		}

		sb := domain.ShuntBank{
			FromBus:     head,
			ControlMode: "C",
			TerminalBus: head,
			Banks:       []domain.Bank{},
		}
		if s := column(line, 9, 13); s != "" {
			if v, err := strconv.Atoi(s); err == nil {
				sb.ToBus = &v
			}
		}
		if s := column(line, 18, 18); s != "" {
			sb.ControlMode = s
		}
		if s := column(line, 36, 41); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				sb.InitialReactiveInjection = v
			}
		}
		if s := columnFrom(line, 47); s != "" {
			if v, err := strconv.Atoi(s); err == nil {
				sb.TerminalBus = v
			}
		}

		// Accumulate bank lines until the FBAN terminator.
		total := 0.0
		for {
			l, ok := cur.Next()
			if !ok {
				// Truncated block: keep what accumulated before EOF.
				sb.TotalShunt = total
				banks = append(banks, sb)
				return banks
			}
			if strings.HasPrefix(l, commentPrefix) || strings.TrimSpace(l) == "" {
				continue
			}
			if strings.HasPrefix(l, bankTerminator) {
				break
			}
			b, err := parseBankLine(l)
			if err != nil {
				d.Warnf("skipping malformed shunt bank line %d: %v", cur.LineNum(), err)
				continue
			}
			if b.State == domain.Connected {
				total += float64(b.UnitsInOperation) * b.UnitReactivePower
			}
			sb.Banks = append(sb.Banks, b)
		}
		sb.TotalShunt = total
		banks = append(banks, sb)

		line1, ok := nextBankHeader(cur)
		if !ok {
			return banks
		}
		line = line1
	}
}

// nextBankHeader peeks past comments and blanks for the next bank header.
// It reports false when the section is over, leaving the sentinel (or
// terminator) line unconsumed.
func nextBankHeader(cur *lineCursor) (string, bool) {
	for {
		l, ok := cur.Peek()
		if !ok {
			return "", false
		}
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(l, commentPrefix) {
			cur.Next()
			continue
		}
		if t == sectionSentinel || t == documentTerminator {
			return "", false
		}
		cur.Next()
		return l, true
	}
}

// parseBankLine parses one per-group bank line: group id (cols 1-2, default
// 1), state (col 7, default connected), units in operation (cols 13-15,
// default 1), and unit reactive power (first token from col 17).
func parseBankLine(line string) (domain.Bank, error) {
	b := domain.Bank{GroupID: 1, State: domain.Connected, UnitsInOperation: 1}

	if s := column(line, 1, 2); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.Bank{}, err
		}
		b.GroupID = v
	}
	if s := column(line, 7, 7); s != "" {
		b.State = domain.ConnState(s)
	}
	if s := column(line, 13, 15); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.Bank{}, err
		}
		b.UnitsInOperation = v
	}
	if rest := columnFrom(line, 17); rest != "" {
		tok := strings.Fields(rest)[0]
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return domain.Bank{}, err
		}
		b.UnitReactivePower = v
	}
	return b, nil
}
