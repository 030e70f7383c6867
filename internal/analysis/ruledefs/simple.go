// Package ruledefs holds the rule functions that decide eligibility for
// expungement and sealing under 18 Pa.C.S. §§ 9122 and 9122.1.
//
// Simple rules take a record, case, or charge and return a single Decision.
// Petition rules take a record and slice it: the parts that satisfy the rule
// go into a proposed petition, the rest pass on to later rules.
package ruledefs

import (
	"fmt"
	"strings"
	"time"

	"cleanslate/internal/analysis"
	"cleanslate/internal/crecord"
)

func decide(name string, value bool, explanation string) analysis.Decision {
	return analysis.Decision{Name: name, Value: analysis.OutcomeOf(value), Explanation: explanation}
}

// IsOverAge decides whether a person is older than the age limit.
func IsOverAge(person crecord.Person, ageLimit int, asOf time.Time) analysis.Decision {
	return decide(
		fmt.Sprintf("Is %s over %d?", person.FirstName, ageLimit),
		person.Age(asOf) > ageLimit,
		fmt.Sprintf("%s is %d.", person.FirstName, person.Age(asOf)),
	)
}

// YearsSinceLastContact decides whether a person has been free of arrest or
// prosecution for at least yearMin years.
func YearsSinceLastContact(rec crecord.Record, yearMin int, asOf time.Time) analysis.Decision {
	years := rec.YearsSinceLastArrestOrProsecution(asOf)
	return decide(
		fmt.Sprintf("Has %s been free of arrest or prosecution for %d years?", rec.Person.FirstName, yearMin),
		years >= yearMin,
		fmt.Sprintf("It has been %d years.", years),
	)
}

// YearsSinceFinalRelease decides whether more than yearMin years have passed
// since the person's final release from confinement.
func YearsSinceFinalRelease(rec crecord.Record, yearMin int, asOf time.Time) analysis.Decision {
	years := rec.YearsSinceFinalRelease(asOf)
	return decide(
		fmt.Sprintf("Has it been at least %d years since %s's final release from custody?", yearMin, rec.Person.FirstName),
		years > yearMin,
		fmt.Sprintf("It has been %d years.", years),
	)
}

// ArrestFreeForNYears decides whether more than yearMin years have passed
// since the last arrest or prosecution.
func ArrestFreeForNYears(rec crecord.Record, yearMin int, asOf time.Time) analysis.Decision {
	years := rec.YearsSinceLastArrestOrProsecution(asOf)
	return decide(
		fmt.Sprintf("Has %s been arrest free and prosecution free for %d years?", rec.Person.FirstName, yearMin),
		years > yearMin,
		fmt.Sprintf("It appears to have been %d years since the last arrest or prosecution.", years),
	)
}

// IsSummary decides whether a charge is graded as a summary offense.
func IsSummary(charge crecord.Charge) analysis.Decision {
	grade := strings.TrimSpace(charge.Grade)
	return decide(
		fmt.Sprintf("Is this charge for %s a summary?", charge.Offense),
		grade == "S",
		fmt.Sprintf("The charge's grade is %s.", grade),
	)
}

// IsUnresolved decides whether a charge appears not to have been resolved.
func IsUnresolved(charge crecord.Charge) analysis.Decision {
	name := fmt.Sprintf("Is charge %s, for %s, still unresolved?", charge.Sequence, charge.Offense)
	if strings.TrimSpace(charge.Disposition) == "" {
		return decide(name, true, "The charge has no disposition, so it appears to be unresolved.")
	}
	return decide(name, false,
		fmt.Sprintf("The charge was resolved with the disposition, '%s'.", charge.Disposition))
}

// IsConviction decides whether a charge is a conviction. A charge with no
// disposition gets an Undecided outcome; the case may simply have been
// transferred.
func IsConviction(charge crecord.Charge) analysis.Decision {
	name := fmt.Sprintf("Is charge %s, for %s, a conviction?", charge.Sequence, charge.Offense)
	if strings.TrimSpace(charge.Disposition) == "" {
		return analysis.Decision{
			Name:        name,
			Value:       analysis.Undecided,
			Explanation: "The charge is missing a disposition, so this case may not be closed (it may have simply been transferred).",
		}
	}
	if charge.IsConviction() {
		return decide(name, true,
			fmt.Sprintf("The charge's disposition %s indicates a conviction.", charge.Disposition))
	}
	return decide(name, false,
		fmt.Sprintf("The charge's disposition %s indicates it's not a conviction.", charge.Disposition))
}

// IsConvictionOrUnresolved decides whether a charge is either a conviction
// or still unresolved. A charge can't be expunged as a nonconviction if
// either is true.
func IsConvictionOrUnresolved(charge crecord.Charge) analysis.Decision {
	d := analysis.Decision{
		Name:      fmt.Sprintf("Is charge %s, for %s, either a conviction or still unresolved?", charge.Sequence, charge.Offense),
		Reasoning: []analysis.Decision{IsUnresolved(charge), IsConviction(charge)},
	}
	d.Value = analysis.OutcomeOf(analysis.AnyGranted(d.Reasoning))
	return d
}

// IsSummaryConviction decides whether a charge is a conviction for a summary
// offense.
func IsSummaryConviction(charge crecord.Charge) analysis.Decision {
	d := analysis.Decision{
		Name:      fmt.Sprintf("Is the charge %s for %s a summary conviction?", charge.Sequence, charge.Offense),
		Reasoning: []analysis.Decision{IsSummary(charge), IsConviction(charge)},
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}
