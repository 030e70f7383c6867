package ruledefs

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cleanslate/internal/analysis"
	"cleanslate/internal/crecord"
)

// statuteBetween reports whether a charge's statute is a Title 18 offense
// with a section strictly between lo and hi.
func statuteBetween(charge crecord.Charge, lo, hi float64) bool {
	chapter, ok := charge.StatuteChapter()
	if !ok || chapter != 18 {
		return false
	}
	section, ok := charge.StatuteSection()
	return ok && section > lo && section < hi
}

// statuteIs reports whether a charge's statute is the given Title 18 section.
func statuteIs(charge crecord.Charge, sections ...float64) bool {
	chapter, ok := charge.StatuteChapter()
	if !ok || chapter != 18 {
		return false
	}
	section, ok := charge.StatuteSection()
	if !ok {
		return false
	}
	for _, s := range sections {
		if section == s {
			return true
		}
	}
	return false
}

// yearsPhrase renders a within-years limit for decision names.
func yearsPhrase(withinYears int) string {
	if withinYears >= crecord.YearsForever {
		return "any number of years"
	}
	return fmt.Sprintf("%d years", withinYears)
}

// TenYearsSinceLastConvictionForMOrF decides whether the person has been
// free from conviction for ten years, counting only misdemeanor and felony
// convictions. 18 Pa.C.S. § 9122.1(a).
func TenYearsSinceLastConvictionForMOrF(rec crecord.Record, asOf time.Time) analysis.Decision {
	name := "Has the person been free of conviction for at least 10 years?"

	var convictionCases []crecord.Case
	for _, c := range rec.Cases {
		for _, charge := range c.Charges {
			if charge.IsConviction() && crecord.GradeAtLeast(charge.Grade, "M3") {
				convictionCases = append(convictionCases, c)
				break
			}
		}
	}
	if len(convictionCases) == 0 {
		return decide(name, true, "The person appears to have no convictions.")
	}

	var last crecord.Case
	dated := 0
	for _, c := range convictionCases {
		if c.DispositionDate.IsZero() {
			continue
		}
		dated++
		if c.DispositionDate.After(last.DispositionDate) {
			last = c
		}
	}
	if dated == 0 {
		return decide(name, false,
			"The disposition dates are missing, so to be safe, we assume it has not been 10 years since the last conviction.")
	}

	years := last.DispositionDate.YearsSince(asOf)
	explanation := fmt.Sprintf("It has been %d years since the last conviction on %s in %s.",
		years, last.DispositionDate.Format("2006-01-02"), last.DocketNumber)
	if undated := len(convictionCases) - dated; undated > 0 {
		explanation += fmt.Sprintf(" But note that there were %d convictions without disposition dates, so our estimate of the last conviction date may be wrong.", undated)
	}
	if years <= 10 {
		explanation += fmt.Sprintf(" The person may be eligible for sealing in %d years, if there are no further convictions.", 10-years+1)
	}
	return decide(name, years > 10, explanation)
}

// FinesAndCostsPaid decides whether all fines and costs on a case are paid.
// Sealing a case requires this. 18 Pa.C.S. § 9122.1(a).
func FinesAndCostsPaid(c crecord.Case) analysis.Decision {
	name := fmt.Sprintf("Fines and costs are all paid on the case %s?", c.DocketNumber)
	remaining, ok := c.FinesRemaining()
	if !ok {
		return decide(name, false,
			"The fines on this case are not fully recorded, so we're not sure whether anything is still owed.")
	}
	return decide(name, remaining <= 0,
		fmt.Sprintf("The case has %d in fines outstanding.", remaining))
}

// AllFinesAndCostsPaid decides whether fines and costs are paid on every
// case in the record.
func AllFinesAndCostsPaid(rec crecord.Record) analysis.Decision {
	d := analysis.Decision{Name: "Are all fines and costs paid for these cases?"}
	for _, c := range rec.Cases {
		d.Reasoning = append(d.Reasoning, FinesAndCostsPaid(c))
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// NotFelony1 decides whether a charge is not an F1 conviction. An F1
// conviction disqualifies a whole record. 18 Pa.C.S. § 9122.1(b)(2)(i).
// A charge with an unknown grade fails; we can't rule an F1 out.
func NotFelony1(charge crecord.Charge) analysis.Decision {
	name := "Is the charge not an F1 conviction?"
	grade := strings.TrimSpace(charge.Grade)
	switch {
	case grade == "":
		return decide(name, false, "The charge's grade is unknown, so we don't know it's *not* an F1.")
	case strings.HasPrefix(grade, "F1"):
		if charge.IsConviction() {
			return decide(name, false, "The charge is an F1 conviction.")
		}
		return decide(name, true,
			fmt.Sprintf("The charge was F1, but the disposition was %s.", charge.Disposition))
	default:
		return decide(name, true, fmt.Sprintf("The charge is %s, which is not F1.", grade))
	}
}

// NotMurder decides whether a charge is not a murder conviction.
// 18 Pa.C.S. § 9122.1(b)(2)(i).
func NotMurder(charge crecord.Charge) analysis.Decision {
	name := "Is the charge not a murder conviction?"
	if !charge.IsConviction() {
		return decide(name, true, "Not a conviction.")
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(charge.Offense)), "murder") {
		return decide(name, false, "The charge was a murder conviction.")
	}
	return decide(name, true, "Conviction for something other than murder.")
}

// NoF1Convictions decides whether the record has no F1 or murder
// convictions. 18 Pa.C.S. § 9122.1(b)(2)(i).
func NoF1Convictions(rec crecord.Record) analysis.Decision {
	d := analysis.Decision{Name: "No F1 or murder convictions in the record?"}
	for _, c := range rec.Cases {
		for _, charge := range c.Charges {
			chargeD := analysis.Decision{
				Name:      fmt.Sprintf("Is charge %s in %s free of F1 or murder convictions?", charge.Sequence, c.DocketNumber),
				Reasoning: []analysis.Decision{NotFelony1(charge), NotMurder(charge)},
			}
			chargeD.Value = analysis.OutcomeOf(analysis.AllGranted(chargeD.Reasoning))
			d.Reasoning = append(d.Reasoning, chargeD)
		}
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// IsFelonyConviction decides whether a charge is a felony conviction.
func IsFelonyConviction(charge crecord.Charge) analysis.Decision {
	return decide(
		fmt.Sprintf("Was the charge [%s, %s, %s] a felony conviction?", charge.Offense, charge.Grade, charge.Disposition),
		strings.HasPrefix(strings.ToUpper(strings.TrimSpace(charge.Grade)), "F") && charge.IsConviction(),
		fmt.Sprintf("The charge's grade is %s with disposition %s.", charge.Grade, charge.Disposition),
	)
}

// AnyFelonyConvictions decides whether the record contains any felony
// convictions within the last withinYears years.
func AnyFelonyConvictions(rec crecord.Record, withinYears int, asOf time.Time) analysis.Decision {
	d := analysis.Decision{
		Name: fmt.Sprintf("Were there any felony convictions within %s?", yearsPhrase(withinYears)),
	}
	found := false
	for _, c := range rec.Cases {
		for _, charge := range c.Charges {
			chargeD := IsFelonyConviction(charge)
			d.Reasoning = append(d.Reasoning, chargeD)
			if chargeD.Granted() && c.YearsPassedDisposition(asOf) <= withinYears {
				found = true
			}
		}
	}
	d.Value = analysis.OutcomeOf(found)
	return d
}

// IsMisdemeanorOrUngraded decides whether a charge is a misdemeanor or an
// ungraded offense. Only those qualify for petition sealing.
// 18 Pa.C.S. § 9122.1(a).
func IsMisdemeanorOrUngraded(charge crecord.Charge) analysis.Decision {
	name := "The offense is a misdemeanor or an ungraded offense with a penalty of five years or less."
	grade := strings.TrimSpace(charge.Grade)
	switch {
	case strings.HasPrefix(grade, "M"):
		return decide(name, true, "Charge is a misdemeanor.")
	case grade == "":
		return decide(name, true,
			"Charge is ungraded. But be careful - we don't know the maximum penalty for the offense.")
	default:
		return decide(name, false, "Charge is neither a misdemeanor nor ungraded.")
	}
}

// NoDangerToPersonOffense decides whether a charge is not a conviction for
// an Article B (danger to the person) offense, 18 Pa.C.S. §§ 2301-3299,
// graded M1 or more serious. 18 Pa.C.S. § 9122.1(b)(1)(ii).
func NoDangerToPersonOffense(charge crecord.Charge) analysis.Decision {
	name := "Is this not a conviction for an Article B offense (M1 or more serious)?"
	if _, ok := charge.StatuteChapter(); !ok {
		return decide(name, true,
			fmt.Sprintf("Couldn't read the statute %s, so it's probably not Article B.", charge.Statute))
	}
	if statuteBetween(charge, 2300, 3300) && charge.IsConviction() {
		if strings.TrimSpace(charge.Grade) == "" {
			return decide(name, false,
				fmt.Sprintf("Statute %s is an Article B conviction, but we do not know the grade. It may or may not be an excluded offense.", charge.Statute))
		}
		if crecord.GradeAtLeast(charge.Grade, "M1") {
			return decide(name, false,
				fmt.Sprintf("Statute %s is an Article B conviction, with a grade of at least M1.", charge.Statute))
		}
	}
	return decide(name, true,
		fmt.Sprintf("Statute %s appears not to be an Article B conviction.", charge.Statute))
}

// RecordNoDangerToPersonOffense decides whether the record is free of
// Article B convictions within the last withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(ii)(A)(I).
func RecordNoDangerToPersonOffense(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	d := analysis.Decision{
		Name: fmt.Sprintf("No convictions in the record for Article B offenses in the last %s.", yearsPhrase(withinYears)),
	}
	failed := 0
	for _, c := range rec.Cases {
		if c.ArrestDate.IsZero() || c.ArrestDate.YearsSince(asOf) >= withinYears {
			continue
		}
		for _, charge := range c.Charges {
			chargeD := NoDangerToPersonOffense(charge)
			d.Reasoning = append(d.Reasoning, chargeD)
			if !chargeD.Granted() {
				failed++
			}
		}
	}
	d.Value = analysis.OutcomeOf(failed < convictionLimit)
	return d
}

// NoOffenseAgainstFamily decides whether a charge is not a conviction for an
// offense against the family, 18 Pa.C.S. §§ 4301-4499.
// 18 Pa.C.S. § 9122.1(b)(2)(ii)(A)(III).
func NoOffenseAgainstFamily(charge crecord.Charge) analysis.Decision {
	name := fmt.Sprintf("Charge for %s is not an offense against the family.", charge.Statute)
	if _, ok := charge.StatuteChapter(); !ok {
		return decide(name, true,
			"The statute doesn't appear to be one of the Article D offense statutes.")
	}
	return decide(name, !(charge.IsConviction() && statuteBetween(charge, 4300, 4500)),
		fmt.Sprintf("The charge's statute is %s with disposition %s.", charge.Statute, charge.Disposition))
}

// NoFirearmsOffense decides whether a charge is not a conviction for a
// Chapter 61 firearms offense, 18 Pa.C.S. §§ 6101-6199.
// 18 Pa.C.S. § 9122.1(b)(1)(iii).
func NoFirearmsOffense(charge crecord.Charge) analysis.Decision {
	name := fmt.Sprintf("Charge for %s is not a firearms offense.", charge.Statute)
	if _, ok := charge.StatuteChapter(); !ok {
		return decide(name, true,
			"The statute doesn't appear to be a Chapter 61 firearms statute.")
	}
	return decide(name, !(charge.IsConviction() && statuteBetween(charge, 6100, 6200)),
		fmt.Sprintf("The charge's statute is %s with disposition %s.", charge.Statute, charge.Disposition))
}

// tieredSexOffenses are the offenses under 42 Pa.C.S. §§ 9799.14 and
// 9799.55, as section-plus-subsection strings.
var tieredSexOffenses = map[string]bool{
	"2901a.1": true, "2902b": true, "2903b": true, "2904": true,
	"2910b": true, "3011b": true, "3121": true, "3122.1b": true,
	"3123": true, "3124.1": true, "3124.2a": true, "3124.2a.1": true,
	"3124.2a2": true, "3124.2a3": true, "3125": true,
	"3126a1": true, "3126a2": true, "3126a3": true, "3126a4": true,
	"3126a5": true, "3126a6": true, "3126a7": true, "3126a8": true,
	"4302b": true, "5902b": true, "5902b.1": true,
	"5903a3ii": true, "5903a4ii": true, "5903a5ii": true, "5903a6": true,
	"6301a1ii": true, "6312": true, "6318": true, "6320": true, "7507.1": true,
}

var statuteSectionPattern = regexp.MustCompile(`^\d+\s*§\s*(\d+\.?\d*)`)

// sectionWithSubsections renders a charge's statute as the section plus
// subsection string the tiered offense list uses ("3126a1"). The list keys
// are lowercase; dockets print subsections uppercase.
func sectionWithSubsections(charge crecord.Charge) (string, bool) {
	m := statuteSectionPattern.FindStringSubmatch(charge.Statute)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1] + charge.StatuteSubsections()), true
}

// NoSexualOffense decides whether a charge is not a conviction for one of
// the tiered sexual or registration offenses. 18 Pa.C.S. § 9122.1(b)(1)(iv).
func NoSexualOffense(charge crecord.Charge) analysis.Decision {
	name := "This charge is not a disqualifying sexual or registration offense?"
	offense, ok := sectionWithSubsections(charge)
	if !ok {
		return decide(name, true,
			"This doesn't appear to be one of the tiered sex offense statutes.")
	}
	chapter, chapterOK := charge.StatuteChapter()
	excluded := charge.IsConviction() && chapterOK && chapter == 18 && tieredSexOffenses[offense]
	return decide(name, !excluded,
		fmt.Sprintf("The charge's statute is %s with disposition %s.", charge.Statute, charge.Disposition))
}

// NoCorruptionOfMinorsOffense decides whether a charge is not a conviction
// under 18 Pa.C.S. § 6301(a)(1), corruption of minors.
// 18 Pa.C.S. § 9122.1(b)(1)(v).
func NoCorruptionOfMinorsOffense(charge crecord.Charge) analysis.Decision {
	name := "This charge is not a disqualifying corruption of minors offense?"
	offense, ok := sectionWithSubsections(charge)
	if !ok {
		return decide(name, true,
			"This doesn't appear to be the corruption of minors statute.")
	}
	chapter, chapterOK := charge.StatuteChapter()
	excluded := charge.IsConviction() && chapterOK && chapter == 18 && offense == "6301a1"
	return decide(name, !excluded,
		fmt.Sprintf("The charge's statute is %s with disposition %s.", charge.Statute, charge.Disposition))
}

// NoCrueltyToAnimals decides whether a charge is not a conviction for
// cruelty to animals, 18 Pa.C.S. § 5533.
func NoCrueltyToAnimals(charge crecord.Charge) analysis.Decision {
	return decide(
		"Is the charge not a conviction for cruelty to animals?",
		!(charge.IsConviction() && statuteIs(charge, 5533)),
		fmt.Sprintf("The charge has disposition of %s, for offense of %s.", charge.Disposition, charge.Statute),
	)
}

// recordSidedRule applies a per-charge exclusion check across a record,
// failing when failures reach convictionLimit.
func recordSidedRule(name string, rec crecord.Record, withinYears int, asOf time.Time, convictionLimit int, check func(crecord.Charge) analysis.Decision) analysis.Decision {
	d := analysis.Decision{Name: name}
	failed := 0
	for _, c := range rec.Cases {
		if c.YearsPassedDisposition(asOf) > withinYears {
			continue
		}
		for _, charge := range c.Charges {
			chargeD := check(charge)
			d.Reasoning = append(d.Reasoning, chargeD)
			if !chargeD.Granted() {
				failed++
			}
		}
	}
	d.Value = analysis.OutcomeOf(failed < convictionLimit)
	return d
}

// RecordNoOffenseAgainstFamily decides whether the record has fewer than
// convictionLimit family offense convictions within withinYears years.
func RecordNoOffenseAgainstFamily(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return recordSidedRule(
		fmt.Sprintf("Not convicted %d or more times within %s of an offense against the family.", convictionLimit, yearsPhrase(withinYears)),
		rec, withinYears, asOf, convictionLimit, NoOffenseAgainstFamily)
}

// RecordNoFirearmsOffense decides whether the record has fewer than
// convictionLimit firearms convictions within withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(ii)(A)(II).
func RecordNoFirearmsOffense(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return recordSidedRule(
		fmt.Sprintf("Not convicted %d or more times within %s of a Chapter 61 firearms offense.", convictionLimit, yearsPhrase(withinYears)),
		rec, withinYears, asOf, convictionLimit, NoFirearmsOffense)
}

// RecordNoSexualOffense decides whether the record has fewer than
// convictionLimit tiered sexual offense convictions within withinYears
// years. 18 Pa.C.S. § 9122.1(b)(2)(ii)(A)(IV).
func RecordNoSexualOffense(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return recordSidedRule(
		fmt.Sprintf("Not convicted %d or more times within %s of certain sexual or registration-related offenses.", convictionLimit, yearsPhrase(withinYears)),
		rec, withinYears, asOf, convictionLimit, NoSexualOffense)
}

// NoFailureToRegisterCharge decides whether a charge is not a conviction
// for failure to register, 18 Pa.C.S. §§ 4915.1 and 4915.2.
func NoFailureToRegisterCharge(charge crecord.Charge) analysis.Decision {
	name := "This charge is not a failure-to-register conviction."
	if !charge.IsConviction() {
		return decide(name, true, "Charge is not a conviction.")
	}
	if statuteIs(charge, 4915.1, 4915.2) {
		return decide(name, false,
			fmt.Sprintf("Charge for %s is a failure-to-register conviction.", charge.Statute))
	}
	return decide(name, true,
		fmt.Sprintf("Charge for %s is not a failure-to-register conviction.", charge.Statute))
}

// NoFailureToRegister decides whether the record has no failure-to-register
// convictions within withinYears years. 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(III).
func NoFailureToRegister(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return recordSidedRule("No failure-to-register convictions in this record.",
		rec, withinYears, asOf, convictionLimit, NoFailureToRegisterCharge)
}

// countingRule counts convictions matching a statute check within
// withinYears years, passing when the count stays under convictionLimit.
func countingRule(name string, rec crecord.Record, convictionLimit, withinYears int, asOf time.Time, match func(crecord.Charge) bool) analysis.Decision {
	count := 0
	var dockets []string
	for _, c := range rec.Cases {
		if c.YearsPassedDisposition(asOf) >= withinYears {
			continue
		}
		for _, charge := range c.Charges {
			if charge.IsConviction() && match(charge) {
				count++
				dockets = append(dockets, c.DocketNumber)
			}
		}
	}
	explanation := "No matching convictions were found."
	if count > 0 {
		explanation = fmt.Sprintf("Found %d matching convictions, in %s.", count, strings.Join(dockets, ", "))
	}
	return decide(name, count < convictionLimit, explanation)
}

// NoIndecentExposure decides whether the record has no indecent exposure
// convictions (18 Pa.C.S. § 3127) within withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(I).
func NoIndecentExposure(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return countingRule("No indecent exposure convictions in this record.",
		rec, convictionLimit, withinYears, asOf,
		func(ch crecord.Charge) bool { return statuteIs(ch, 3127) })
}

// NoSexualIntercourseWithAnimal decides whether the record has no
// convictions under 18 Pa.C.S. § 3129 within withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(II).
func NoSexualIntercourseWithAnimal(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return countingRule("No intercourse with animals convictions in this record.",
		rec, convictionLimit, withinYears, asOf,
		func(ch crecord.Charge) bool { return statuteIs(ch, 3129) })
}

// NoWeaponsOfEscape decides whether the record has no convictions for
// possession of an implement or weapon of escape (18 Pa.C.S. § 5122) within
// withinYears years. 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(IV).
func NoWeaponsOfEscape(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return countingRule("No possession-of-implement-of-escape convictions in this record.",
		rec, convictionLimit, withinYears, asOf,
		func(ch crecord.Charge) bool { return statuteIs(ch, 5122) })
}

// NoAbuseOfCorpse decides whether the record has no abuse of corpse
// convictions (18 Pa.C.S. § 5510) within withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(V).
func NoAbuseOfCorpse(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return countingRule("No abuse of corpse convictions in this record.",
		rec, convictionLimit, withinYears, asOf,
		func(ch crecord.Charge) bool { return statuteIs(ch, 5510) })
}

// NoParamilitaryTraining decides whether the record has no paramilitary
// training convictions (18 Pa.C.S. § 5515) within withinYears years.
// 18 Pa.C.S. § 9122.1(b)(2)(iii)(B)(VI).
func NoParamilitaryTraining(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	return countingRule("No paramilitary training convictions in this record.",
		rec, convictionLimit, withinYears, asOf,
		func(ch crecord.Charge) bool { return statuteIs(ch, 5515) })
}

// MoreThanXConvictionsYGradeZYears decides whether the record contains
// offenseLimit or more convictions graded gradeLimit or higher within the
// last withinYears years. The limits are inclusive.
func MoreThanXConvictionsYGradeZYears(rec crecord.Record, offenseLimit int, gradeLimit string, withinYears int, asOf time.Time) analysis.Decision {
	name := fmt.Sprintf("Does %s's record contain %d or more convictions, graded %s or higher, within the last %s?",
		rec.Person.FullName(), offenseLimit, gradeLimit, yearsPhrase(withinYears))
	count := 0
	var dockets []string
	for _, c := range rec.Cases {
		if c.YearsPassedDisposition(asOf) > withinYears {
			continue
		}
		for _, charge := range c.Charges {
			if charge.IsConviction() && crecord.GradeAtLeast(charge.Grade, gradeLimit) {
				count++
				dockets = append(dockets, c.DocketNumber)
			}
		}
	}
	explanation := fmt.Sprintf("Found %d qualifying convictions.", count)
	if count > 0 {
		explanation = fmt.Sprintf("Found %d qualifying convictions, in %s.", count, strings.Join(dockets, ", "))
	}
	return decide(name, count >= offenseLimit, explanation)
}

// proxyGrades approximate the grades of offenses that carry penalties of
// two or more years.
var proxyGrades = map[string]bool{"F1": true, "F2": true, "F3": true, "F": true, "M1": true, "M2": true}

// OffensesPunishableByTwoOrMoreYears decides whether the record stays under
// convictionLimit convictions for offenses punishable by two or more years
// within withinYears years, using the charge grade as a proxy for the
// penalty. 18 Pa.C.S. §§ 9122.1(b)(2)(ii)(B) and (b)(2)(iii)(A).
func OffensesPunishableByTwoOrMoreYears(rec crecord.Record, convictionLimit, withinYears int, asOf time.Time) analysis.Decision {
	name := fmt.Sprintf("The record has no more than %d convictions for offenses punishable by two or more years in the last %s.",
		convictionLimit, yearsPhrase(withinYears))
	count := 0
	for _, c := range rec.Cases {
		if c.YearsPassedDisposition(asOf) >= withinYears {
			continue
		}
		for _, charge := range c.Charges {
			if charge.IsConviction() && proxyGrades[strings.TrimSpace(charge.Grade)] {
				count++
			}
		}
	}
	return decide(name, count < convictionLimit,
		fmt.Sprintf("Found %d convictions for offenses with penalties of two or more years.", count))
}

// ChargeIsNotExcludedFromSealing decides whether a charge avoids every
// per-charge sealing exclusion. Convictions for these charges can't be
// sealed, though they don't disqualify the whole record.
func ChargeIsNotExcludedFromSealing(charge crecord.Charge) analysis.Decision {
	d := analysis.Decision{
		Name: fmt.Sprintf("Is the charge for %s not excluded from sealing?", charge.Offense),
		Reasoning: []analysis.Decision{
			NoDangerToPersonOffense(charge),
			NoOffenseAgainstFamily(charge),
			NoFirearmsOffense(charge),
			NoSexualOffense(charge),
			NoCrueltyToAnimals(charge),
			NoCorruptionOfMinorsOffense(charge),
		},
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// RecordContainsExcludedConvictions decides whether the record contains any
// conviction that bars the whole record from automatic sealing. A Yes
// outcome means the record is excluded.
func RecordContainsExcludedConvictions(rec crecord.Record, asOf time.Time) analysis.Decision {
	forever := crecord.YearsForever
	d := analysis.Decision{
		Name: "Does this record include any convictions for an offense that would bar the whole record from automatic sealing?",
		Reasoning: []analysis.Decision{
			AnyFelonyConvictions(rec, forever, asOf),
			MoreThanXConvictionsYGradeZYears(rec, 2, "M1", forever, asOf),
			MoreThanXConvictionsYGradeZYears(rec, 4, "M", forever, asOf),
			invert(NoIndecentExposure(rec, 1, 15, asOf),
				"Does this record have any convictions for indecent exposure?"),
			invert(NoSexualIntercourseWithAnimal(rec, 1, forever, asOf),
				"Does the record have any conviction for intercourse with an animal?"),
			invert(NoFailureToRegister(rec, 1, 15, asOf),
				"Does the record have any convictions for failure to register?"),
			invert(NoAbuseOfCorpse(rec, 1, forever, asOf),
				"Does the record contain any convictions for abuse of a corpse?"),
			invert(NoParamilitaryTraining(rec, 1, forever, asOf),
				"Does the record contain any convictions for paramilitary training?"),
		},
	}
	d.Value = analysis.OutcomeOf(analysis.AnyGranted(d.Reasoning))
	return d
}

// RecordFreeOfExcludedConvictions is the inverse of
// RecordContainsExcludedConvictions.
func RecordFreeOfExcludedConvictions(rec crecord.Record, asOf time.Time) analysis.Decision {
	return invert(RecordContainsExcludedConvictions(rec, asOf),
		"Is this record free of any convictions that exclude it from automatic sealing?")
}

// invert renames a decision and flips its outcome. An Undecided decision
// stays Undecided.
func invert(d analysis.Decision, name string) analysis.Decision {
	d.Name = name
	switch d.Value {
	case analysis.Yes:
		d.Value = analysis.No
	case analysis.No:
		d.Value = analysis.Yes
	}
	return d
}

// FullRecordRequirementsForPetitionSealing evaluates the record-wide
// requirements for sealing any part of a record by petition.
// 18 Pa.C.S. § 9122.1.
func FullRecordRequirementsForPetitionSealing(rec crecord.Record, asOf time.Time) analysis.Decision {
	d := analysis.Decision{
		Name: "Sealing requirements that relate to the whole record.",
		Reasoning: []analysis.Decision{
			TenYearsSinceLastConvictionForMOrF(rec, asOf),
			NoF1Convictions(rec),
			RecordNoDangerToPersonOffense(rec, 1, 20, asOf),
			RecordNoOffenseAgainstFamily(rec, 1, 20, asOf),
			RecordNoFirearmsOffense(rec, 1, 20, asOf),
			RecordNoSexualOffense(rec, 1, 20, asOf),
			OffensesPunishableByTwoOrMoreYears(rec, 4, 20, asOf),
			OffensesPunishableByTwoOrMoreYears(rec, 2, 15, asOf),
			NoIndecentExposure(rec, 1, 15, asOf),
			NoSexualIntercourseWithAnimal(rec, 1, 15, asOf),
			NoFailureToRegister(rec, 1, 15, asOf),
			NoWeaponsOfEscape(rec, 1, 15, asOf),
			NoAbuseOfCorpse(rec, 1, 15, asOf),
			NoParamilitaryTraining(rec, 1, 15, asOf),
		},
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// SealableByPetitionCharge decides whether a single charge passes the
// per-charge sealing screens of 18 Pa.C.S. § 9122.1(b)(1).
func SealableByPetitionCharge(charge crecord.Charge) analysis.Decision {
	d := analysis.Decision{
		Name: fmt.Sprintf("Sealing charge %s, %s", charge.Sequence, charge.Offense),
		Reasoning: []analysis.Decision{
			IsMisdemeanorOrUngraded(charge),
			NoDangerToPersonOffense(charge),
			NoOffenseAgainstFamily(charge),
			NoFirearmsOffense(charge),
			NoSexualOffense(charge),
			NoCorruptionOfMinorsOffense(charge),
		},
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// NoM1OrHigherInCase decides whether a case is free of convictions graded
// M1 or more serious. Automated sealing is unavailable for a case with one.
func NoM1OrHigherInCase(c crecord.Case) analysis.Decision {
	serious := 0
	for _, charge := range c.Charges {
		if charge.IsConviction() && crecord.GradeAtLeast(charge.Grade, "M1") {
			serious++
		}
	}
	return decide(
		"Is the case free of convictions for M1 or more severe offenses?",
		serious == 0,
		fmt.Sprintf("There are %d charges graded M1 or more severe in the case %s.", serious, c.DocketNumber),
	)
}
