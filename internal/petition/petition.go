// Package petition models expungement and sealing petitions and renders
// them into filed documents.
package petition

import (
	"fmt"
	"strings"

	"cleanslate/internal/crecord"
)

// Kind distinguishes the two petition types the analysis can propose.
type Kind string

const (
	KindExpungement Kind = "Expungement"
	KindSealing     Kind = "Sealing"
)

// ExpungementType tells the user whether a petition clears a whole case or
// only some charges on it.
type ExpungementType string

const (
	FullExpungement    ExpungementType = "Full Expungement"
	PartialExpungement ExpungementType = "Partial Expungement"
)

// Procedure is the rule of criminal procedure a petition is filed under.
// Rule 490 covers expungement of summary convictions; Rule 790 covers
// everything else.
type Procedure string

const (
	SummaryProcedure    Procedure = "§ 490"
	NonsummaryProcedure Procedure = "§ 790"
)

// Petition is a proposed filing to expunge or seal one or more cases.
type Petition struct {
	Kind                  Kind              `json:"petition_type"`
	Attorney              crecord.Attorney  `json:"attorney"`
	Client                crecord.Person    `json:"client"`
	Cases                 []crecord.Case    `json:"cases"`
	ExpungementType       ExpungementType   `json:"expungement_type,omitempty"`
	Procedure             Procedure         `json:"petition_procedure,omitempty"`
	ExpungementReasons    string            `json:"expungement_reasons,omitempty"`
	ServiceAgencies       []string          `json:"service_agencies,omitempty"`
	IncludeCrimHistReport string            `json:"include_crim_hist_report,omitempty"`
	IFPMessage            string            `json:"ifp_message,omitempty"`
}

// NewExpungement builds an expungement petition for a client's cases.
func NewExpungement(client crecord.Person, cases []crecord.Case, expungementType ExpungementType, reasons string) Petition {
	return Petition{
		Kind:               KindExpungement,
		Client:             client,
		Cases:              cases,
		ExpungementType:    expungementType,
		Procedure:          procedureFor(cases),
		ExpungementReasons: reasons,
	}
}

// NewSealing builds a sealing petition for a client's cases.
func NewSealing(client crecord.Person, cases []crecord.Case) Petition {
	return Petition{
		Kind:   KindSealing,
		Client: client,
		Cases:  cases,
	}
}

// procedureFor picks Rule 490 when every charge on the petition is a summary
// offense, Rule 790 otherwise.
func procedureFor(cases []crecord.Case) Procedure {
	for _, c := range cases {
		for _, charge := range c.Charges {
			if strings.TrimSpace(charge.Grade) != "S" {
				return NonsummaryProcedure
			}
		}
	}
	return SummaryProcedure
}

// FileName names the rendered document for this petition.
func (p Petition) FileName() string {
	docket := "NoDocket"
	if len(p.Cases) > 0 && p.Cases[0].DocketNumber != "" {
		docket = p.Cases[0].DocketNumber
	}
	return fmt.Sprintf("%s_%s.docx", p.Kind, docket)
}
