// Package parser extracts people, cases, and charges from the text layer of
// court documents. The Common Pleas docket parser works line by line over the
// tabular sections of a docket sheet.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"cleanslate/internal/crecord"
)

// ParseCPDocketText extracts a person and case from the text of a Common
// Pleas (or Municipal Court) docket sheet. Parsing is best-effort: fields
// that cannot be found are left zero and reported in the returned errors.
func ParseCPDocketText(txt string) (crecord.Person, []crecord.Case, []string) {
	person, personErrs := parsePerson(txt)
	c, caseErrs := parseCase(txt)
	return person, []crecord.Case{c}, append(personErrs, caseErrs...)
}

var (
	defendantPattern   = regexp.MustCompile(`(?m)^Defendant\s+(.*), (.*)$`)
	dobPattern         = regexp.MustCompile(`Date Of Birth:?\s+(\d{1,2}/\d{1,2}/\d{4})`)
	cityStateZipLine   = regexp.MustCompile(`(?m)City/State/Zip:[ \t]*(.*?)[ \t]*$`)
	docketNumPattern   = regexp.MustCompile(`Docket Number:\s+((?:MC|CP)-\d{2}-\D{2}-\d+-\d{4})`)
	otnPattern         = regexp.MustCompile(`OTN:\s+(\D\s?\d+(?:-\d)?)`)
	statusPattern      = regexp.MustCompile(`(?i)case status:[ \t]+((?:\w+[ \t]?)+)`)
	countyPattern      = regexp.MustCompile(`(?i)\sof\s(\w+)\sCOUNTY`)
	complaintPattern   = regexp.MustCompile(`Complaint Date:\s+(\d{1,2}/\d{1,2}/\d{4})`)
	arrestPattern      = regexp.MustCompile(`Arrest Date:\s+(\d{1,2}/\d{1,2}/\d{4})`)
	dispositionPattern = regexp.MustCompile(`(?:Plea|Status|Status of Restitution|Status - Community Court|Status Listing|Migrated Dispositional Event|Trial|Preliminary Hearing|Pre-Trial Conference)\s+(\d{1,2}/\d{1,2}/\d{4})\s+Final Disposition`)
	costsPattern       = regexp.MustCompile(`Totals:\s+\$([\d,]+\.\d{2})\s+-?\(?\$([\d,]+\.\d{2})\)?`)
	judgePattern       = regexp.MustCompile(`Judge Assigned:\s+(.*?)\s+(?:Date Filed|Issue Date):`)
	issuingAuthPattern = regexp.MustCompile(`Final Issuing Authority:\s+(.*)`)
	arrestingPattern   = regexp.MustCompile(`Arresting Agency:\s+(.*?)\s+Arresting Officer: ([^\d\n]+)`)
	dcPattern          = regexp.MustCompile(`District Control Number\s+(\d+)`)
	migratedPattern    = regexp.MustCompile(`(?i)migrated`)
)

func parsePerson(txt string) (crecord.Person, []string) {
	var person crecord.Person
	var errs []string

	if m := defendantPattern.FindStringSubmatch(txt); m != nil {
		person.LastName = strings.TrimSpace(m[1])
		person.FirstName = strings.TrimSpace(m[2])
	} else {
		errs = append(errs, "could not find the defendant's name")
	}

	if m := dobPattern.FindStringSubmatch(txt); m != nil {
		dob := crecord.ParseDate(m[1])
		if dob.IsZero() {
			errs = append(errs, fmt.Sprintf("could not read date of birth %q", m[1]))
		} else {
			person.DateOfBirth = dob
		}
	} else {
		errs = append(errs, "could not find a date of birth")
	}

	info := sectionBetween(txt, "DEFENDANT INFORMATION", "CASE PARTICIPANTS")
	if info == "" {
		errs = append(errs, "could not find the DEFENDANT INFORMATION section")
		return person, errs
	}

	person.Aliases = parseAliases(info)
	if m := cityStateZipLine.FindStringSubmatch(info); m != nil {
		person.Address = &crecord.Address{LineOne: m[1]}
	}
	return person, errs
}

// parseAliases collects the lines following an "Alias Name" heading, up to
// the next blank line or section header.
func parseAliases(sectionText string) []string {
	lines := strings.Split(sectionText, "\n")
	var aliases []string
	collecting := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Alias Name") {
			collecting = true
			continue
		}
		if !collecting {
			continue
		}
		if trimmed == "" || isSectionHeader(trimmed) || strings.Contains(trimmed, ":") {
			break
		}
		aliases = append(aliases, trimmed)
	}
	return aliases
}

func parseCase(txt string) (crecord.Case, []string) {
	var c crecord.Case
	var errs []string

	if m := docketNumPattern.FindStringSubmatch(txt); m != nil {
		c.DocketNumber = m[1]
	} else {
		errs = append(errs, "could not find a docket number")
	}

	if m := otnPattern.FindStringSubmatch(txt); m != nil {
		c.OTN = strings.TrimSpace(m[1])
	} else {
		errs = append(errs, "could not find an OTN")
	}

	charges, chargeErrs := parseCharges(txt)
	c.Charges = charges
	errs = append(errs, chargeErrs...)

	if m := costsPattern.FindStringSubmatch(txt); m != nil {
		total, totalOK := parseMoney(m[1])
		paid, paidOK := parseMoney(m[2])
		if totalOK && paidOK {
			c.TotalFines = &total
			c.FinesPaid = &paid
		} else {
			errs = append(errs, "found costs and fines, but could not convert them to numbers")
		}
	} else {
		errs = append(errs, "could not find the case financial totals")
	}

	if m := statusPattern.FindStringSubmatch(txt); m != nil {
		c.Status = strings.TrimSpace(m[1])
	} else {
		errs = append(errs, "could not find the case status")
	}

	if m := countyPattern.FindStringSubmatch(txt); m != nil {
		c.County = m[1]
	} else {
		errs = append(errs, "could not find the county")
	}

	c.ComplaintDate = parseDateField(txt, complaintPattern, "complaint date", &errs)
	c.ArrestDate = parseDateField(txt, arrestPattern, "arrest date", &errs)

	// A missing disposition date is not an error: open cases don't have one.
	if m := dispositionPattern.FindStringSubmatch(txt); m != nil {
		if d := crecord.ParseDate(m[1]); !d.IsZero() {
			c.DispositionDate = d
		} else {
			errs = append(errs, fmt.Sprintf("could not read disposition date %q", m[1]))
		}
	}

	if m := judgePattern.FindStringSubmatch(txt); m != nil {
		judge := strings.TrimSpace(strings.ReplaceAll(m[1], "Magisterial District Judge", ""))
		if !migratedPattern.MatchString(judge) {
			c.Judge = judge
		}
	}
	if m := issuingAuthPattern.FindStringSubmatch(txt); m != nil {
		judge := strings.TrimSpace(m[1])
		if judge != "" && !migratedPattern.MatchString(judge) {
			c.Judge = judge
		}
	}

	if m := dcPattern.FindStringSubmatch(txt); m != nil {
		c.DC = m[1]
	}

	if m := arrestingPattern.FindStringSubmatch(txt); m != nil {
		c.ArrestingAgency = strings.TrimSpace(m[1])
		affiant := strings.TrimSpace(m[2])
		if affiant == "" || strings.Contains(affiant, "Affiant") {
			affiant = "Unknown Officer"
		}
		c.Affiant = affiant
	}

	return c, errs
}

func parseDateField(txt string, pattern *regexp.Regexp, name string, errs *[]string) crecord.Date {
	m := pattern.FindStringSubmatch(txt)
	if m == nil {
		*errs = append(*errs, "could not find the "+name)
		return crecord.Date{}
	}
	d := crecord.ParseDate(m[1])
	if d.IsZero() {
		*errs = append(*errs, fmt.Sprintf("could not read the %s %q", name, m[1]))
	}
	return d
}

// parseMoney reads an amount like "1,234.56" as whole dollars.
func parseMoney(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	dollars, _, found := strings.Cut(s, ".")
	if !found && dollars == "" {
		return 0, false
	}
	var n int
	for _, r := range dollars {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// parseCharges combines the CHARGES section, which lists every charge with
// its statute and grade, with the DISPOSITION SENTENCING/PENALTIES section,
// which carries each charge's final disposition.
func parseCharges(txt string) ([]crecord.Charge, []string) {
	charges, errs := parseChargesSection(txt)
	dispositions, dispErrs := parseDispositionSection(txt)
	errs = append(errs, dispErrs...)

	bySequence := map[string]crecord.Charge{}
	var order []string
	for _, charge := range charges {
		bySequence[charge.Sequence] = charge
		order = append(order, charge.Sequence)
	}
	for _, charge := range dispositions {
		existing, ok := bySequence[charge.Sequence]
		if !ok {
			bySequence[charge.Sequence] = charge
			order = append(order, charge.Sequence)
			continue
		}
		existing.CombineWith(charge)
		bySequence[charge.Sequence] = existing
	}

	merged := make([]crecord.Charge, 0, len(order))
	for _, seq := range order {
		merged = append(merged, bySequence[seq])
	}
	if len(merged) == 0 {
		errs = append(errs, "could not find any charges")
	}
	return merged, errs
}

var sectionHeaderPattern = regexp.MustCompile(`^[A-Z/ -]+$`)

func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) > 3 && sectionHeaderPattern.MatchString(trimmed)
}

// sectionBetween returns the text between two section headers, or "" when
// the first header is missing.
func sectionBetween(txt, from, to string) string {
	start := strings.Index(txt, from)
	if start < 0 {
		return ""
	}
	rest := txt[start+len(from):]
	if end := strings.Index(rest, to); end >= 0 {
		return rest[:end]
	}
	return rest
}

// parseChargesSection reads the fixed-width table under the CHARGES header.
// Column positions come from the header line, so the parser tolerates the
// varying column widths of different dockets.
func parseChargesSection(txt string) ([]crecord.Charge, []string) {
	var errs []string
	lines := strings.Split(txt, "\n")

	var charges []crecord.Charge
	found := false
	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "CHARGES" {
			continue
		}
		found = true

		// The line after the header names the columns.
		if i+1 >= len(lines) {
			break
		}
		header := lines[i+1]
		cols := chargeColumns{
			sequence: strings.Index(header, "Seq."),
			grade:    strings.Index(header, "Grade"),
			statute:  strings.Index(header, "Statute"),
			offense:  strings.Index(header, "Statute Description"),
			otn:      strings.Index(header, "OTN"),
		}
		if cols.sequence < 0 {
			errs = append(errs, "could not read the CHARGES table header")
			continue
		}

		for j := i + 2; j < len(lines); j++ {
			line := lines[j]
			if strings.TrimSpace(line) == "" || isSectionHeader(line) {
				break
			}
			sequence := strings.TrimSpace(cols.slice(line, cols.sequence, cols.grade))
			if sequence == "" {
				// Continuation of the previous charge's offense text.
				if len(charges) > 0 {
					overflow := strings.TrimSpace(cols.slice(line, cols.offense, cols.otn))
					if overflow != "" {
						charges[len(charges)-1].Offense += " " + overflow
					}
				}
				continue
			}
			charges = append(charges, crecord.Charge{
				Sequence: sequence,
				Grade:    strings.TrimSpace(cols.slice(line, cols.grade, cols.statute)),
				Statute:  strings.TrimSpace(cols.slice(line, cols.statute, cols.offense)),
				Offense:  strings.TrimSpace(cols.slice(line, cols.offense, cols.otn)),
				OTN:      strings.TrimSpace(cols.slice(line, cols.otn, -1)),
			})
		}
	}
	if !found {
		errs = append(errs, "could not find a CHARGES section")
	}
	return charges, errs
}

type chargeColumns struct {
	sequence, grade, statute, offense, otn int
}

// slice cuts a column out of a fixed-width line, clamped to the line length.
func (chargeColumns) slice(line string, from, to int) string {
	if from < 0 || from >= len(line) {
		return ""
	}
	if to < 0 || to > len(line) {
		to = len(line)
	}
	if to < from {
		return ""
	}
	return line[from:to]
}

var (
	dispositionChargePattern = regexp.MustCompile(`^\s*(\d+)\s+/\s+(.+?)\s{2,}(\w[\w ().'-]*?)\s{2,}(\w{0,2})\s+(\d{1,2}\s?§\s?[\d.]+(?:[-§\w]+)*)`)
	dispositionDatePattern   = regexp.MustCompile(`^\s*(?:\S+\s)+\s+(\d{1,2}/\d{1,2}/\d{4})`)
	offenseOverflowPattern   = regexp.MustCompile(`^\s+(\w+\s*\w*)\s*$`)
)

// parseDispositionSection reads the DISPOSITION SENTENCING/PENALTIES section.
// The section tracks a charge through a history of events; the last event for
// each sequence number is the final disposition.
func parseDispositionSection(txt string) ([]crecord.Charge, []string) {
	var errs []string
	section := sectionBetween(txt, "DISPOSITION SENTENCING/PENALTIES", "COMMONWEALTH INFORMATION")
	if section == "" {
		errs = append(errs, "could not find the disposition/sentencing section")
		return nil, errs
	}

	lines := strings.Split(section, "\n")
	var history []crecord.Charge
	for idx := 0; idx < len(lines); idx++ {
		m := dispositionChargePattern.FindStringSubmatch(lines[idx])
		if m == nil {
			continue
		}
		offense := strings.TrimSpace(m[2])
		next := idx + 1
		if next < len(lines) {
			if overflow := offenseOverflowPattern.FindStringSubmatch(lines[next]); overflow != nil {
				offense += " " + strings.TrimSpace(overflow[1])
				next++
			}
		}

		charge := crecord.Charge{
			Sequence:    m[1],
			Offense:     offense,
			Disposition: strings.TrimSpace(m[3]),
			Grade:       m[4],
			Statute:     m[5],
		}

		// A charge may have several dated events below it; the last date is
		// the final disposition date.
		for next < len(lines) {
			dm := dispositionDatePattern.FindStringSubmatch(lines[next])
			if dm == nil {
				break
			}
			if d := crecord.ParseDate(dm[1]); !d.IsZero() {
				charge.DispositionDate = d
			}
			next++
		}
		history = append(history, charge)
	}

	merged := crecord.ReduceMerge(history)
	for _, charge := range merged {
		if charge.DispositionDate.IsZero() {
			errs = append(errs, fmt.Sprintf(
				"could not find a disposition date for %s / %s with disposition %s",
				charge.Sequence, charge.Offense, charge.Disposition))
		}
	}
	return merged, errs
}
