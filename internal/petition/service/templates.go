package service

// Built-in petition bodies, used until an organization uploads its own.
// The fields match the namespace in petition.Render.

const builtinExpungementTemplate = `IN THE COURT OF COMMON PLEAS

COMMONWEALTH OF PENNSYLVANIA v. {{ .Client.FullName }}

PETITION FOR EXPUNGEMENT PURSUANT TO Pa.R.Crim.P. {{ .Petition.Procedure }}

{{ .Client.FullName }}, by counsel {{ .Attorney.FullName }} of {{ .Attorney.Organization }}, petitions this Court for an order expunging the records of the following:
{{ range .Cases }}
Docket: {{ .DocketNumber }}{{ range .Charges }}
  Charge {{ .Sequence }}: {{ .Offense }} ({{ .Grade }}) — {{ .Disposition }}{{ end }}
{{ end }}
{{ if .Petition.ExpungementReasons }}Petitioner avers: {{ .Petition.ExpungementReasons }}
{{ end }}{{ if .IFPMessage }}{{ .IFPMessage }}
{{ end }}
Respectfully submitted this {{ .Date }},

{{ .Attorney.FullName }}
{{ .Attorney.Organization }}
Bar ID {{ .Attorney.BarID }}
{{ .Attorney.OrganizationPhone }}
`

const builtinSealingTemplate = `IN THE COURT OF COMMON PLEAS

COMMONWEALTH OF PENNSYLVANIA v. {{ .Client.FullName }}

PETITION FOR ORDER LIMITING ACCESS PURSUANT TO 18 Pa.C.S. § 9122.1

{{ .Client.FullName }}, by counsel {{ .Attorney.FullName }} of {{ .Attorney.Organization }}, petitions this Court for an order limiting access to the records of the following:
{{ range .Cases }}
Docket: {{ .DocketNumber }}{{ range .Charges }}
  Charge {{ .Sequence }}: {{ .Offense }} ({{ .Grade }}) — {{ .Disposition }}{{ end }}
{{ end }}
Respectfully submitted this {{ .Date }},

{{ .Attorney.FullName }}
{{ .Attorney.Organization }}
Bar ID {{ .Attorney.BarID }}
{{ .Attorney.OrganizationPhone }}
`
