package servicerecord

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/louisbranch/servicerecord/internal/services/career/storage"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/engine"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/snapshot"
)

var sheetTemplate = template.Must(template.New("sheet").Parse(`{{.Name}}{{with .Title}}, {{.}}{{end}}
  id       {{.ID}}
  upp      {{.UPP}}
  age      {{.Age}}
  terms    {{.Terms}}
  service  {{.Service}}
  status   {{.Status}}
{{- with .Skills}}
  skills   {{.}}
{{- end}}
{{- with .Muster}}
  muster   {{.}} benefit rolls
{{- end}}
{{- range .History}}
  term {{.Term}}  {{.Career}}  age {{.AgeStart}}-{{.AgeEnd}}{{if .Partial}}  injured{{end}}
{{- end}}
`))

type sheetView struct {
	ID      string
	Name    string
	Title   string
	UPP     string
	Age     int
	Terms   string
	Service string
	Status  string
	Skills  string
	Muster  string
	History []domain.TermRecord
}

func newSheetView(record snapshot.Record) sheetView {
	ch := record.Character
	view := sheetView{
		ID:      record.ID,
		Name:    ch.Name,
		UPP:     ch.UPP(),
		Age:     ch.Age,
		Terms:   strconv.FormatFloat(ch.TermsServed, 'f', -1, 64),
		Service: "none",
		Status:  string(ch.Status),
		History: ch.CareerHistory,
	}

	var titles []string
	if rank := ch.RankTitle(); rank != "" {
		titles = append(titles, rank)
	}
	if noble := ch.NobleTitle(); noble != "" {
		titles = append(titles, noble)
	}
	view.Title = strings.Join(titles, ", ")

	if ch.Career != "" {
		view.Service = string(ch.Career)
		if ch.Drafted {
			view.Service += " (drafted)"
		}
	}
	if ch.Term != nil && ch.Status == domain.StatusActive {
		view.Status = fmt.Sprintf("%s, term %d awaiting %s", ch.Status, ch.Term.Number, ch.Term.Phase)
	}

	skills := make([]string, 0, len(ch.Skills))
	for name, level := range ch.Skills {
		skills = append(skills, fmt.Sprintf("%s-%d", name, level))
	}
	slices.Sort(skills)
	view.Skills = strings.Join(skills, ", ")

	if ch.MusteringOutRolls != nil {
		view.Muster = strconv.Itoa(*ch.MusteringOutRolls)
	}
	return view
}

func renderSheet(out io.Writer, record snapshot.Record) error {
	return sheetTemplate.Execute(out, newSheetView(record))
}

func renderReveal(out io.Writer, res engine.RevealOutcome) {
	fmt.Fprintf(out, "%s: %d\n", res.Characteristic.Name(), res.Value)
	if len(res.Hidden) == 0 {
		fmt.Fprintln(out, "All characteristics revealed.")
		return
	}
	keys := make([]string, len(res.Hidden))
	for i, ch := range res.Hidden {
		keys[i] = ch.String()
	}
	fmt.Fprintf(out, "Still hidden: %s\n", strings.Join(keys, " "))
}

func renderEnlist(out io.Writer, res engine.EnlistOutcome) {
	r := res.Result
	roll := fmt.Sprintf("rolled %d%s vs %d+", r.Roll, signed(r.Modifier), r.RequiredRoll)
	if r.Status == domain.Drafted {
		fmt.Fprintf(out, "Enlistment in the %s refused (%s). Drafted into the %s.\n", r.Requested, roll, r.Career)
	} else {
		fmt.Fprintf(out, "Enlisted in the %s (%s).\n", r.Career, roll)
	}
	if res.Grant != nil {
		fmt.Fprintf(out, "  %s\n", res.Grant.Description)
	}
}

func renderSurvival(out io.Writer, res domain.SurvivalResult) {
	fmt.Fprintf(out, "Survival: rolled %d%s = %d vs %d+, %s.\n",
		res.Roll, signed(res.Bonus), res.Total, res.RequiredRoll, res.Outcome)
}

func renderAdvancement(out io.Writer, res engine.AdvancementOutcome) {
	switch {
	case res.Commission != nil:
		c := res.Commission
		fmt.Fprintf(out, "Commission: rolled %d%s = %d vs %d+, ", c.Roll, signed(c.Modifier), c.Total, c.RequiredRoll)
		if c.Success {
			fmt.Fprintf(out, "commissioned as %s.\n", domain.RankTitle(c.Career, 1))
		} else {
			fmt.Fprintln(out, "not commissioned.")
		}
	case res.Promotion != nil:
		p := res.Promotion
		fmt.Fprintf(out, "Promotion: rolled %d%s = %d vs %d+, ", p.Roll, signed(p.Modifier), p.Total, p.RequiredRoll)
		if p.Success {
			fmt.Fprintf(out, "promoted to %s.\n", domain.RankTitle(p.Career, p.Rank))
		} else {
			fmt.Fprintln(out, "not promoted.")
		}
	}
	renderGrants(out, res.Grants)
}

func renderGrants(out io.Writer, grants []domain.SkillGrant) {
	for _, grant := range grants {
		fmt.Fprintf(out, "  %s\n", grant.Description)
	}
}

func renderSummary(out io.Writer, summary domain.TermSummary) {
	fmt.Fprintf(out, "Term %d complete at age %d.\n", summary.Term, summary.Age)
	for _, effect := range summary.AgingEffects {
		result := "avoided"
		if !effect.Avoided {
			result = fmt.Sprintf("%+d", effect.Delta)
		}
		fmt.Fprintf(out, "  aging at %d: %s rolled %d vs %d+, %s\n",
			effect.Threshold, effect.Characteristic.Name(), effect.Roll, effect.Target, result)
	}
}

func renderReenlistment(out io.Writer, res domain.ReenlistmentResult) {
	var verdict string
	switch res.Outcome {
	case domain.Approved:
		verdict = "serving another term"
	case domain.Mandatory:
		verdict = "reenlistment is mandatory"
	case domain.Retired:
		verdict = "retired"
	default:
		verdict = "reenlistment denied"
	}
	fmt.Fprintf(out, "Reenlistment at age %d: rolled %d vs %d+, %s.\n", res.Age, res.Roll, res.RequiredRoll, verdict)
}

func renderMuster(out io.Writer, rolls int) {
	fmt.Fprintf(out, "%d mustering-out benefit rolls.\n", rolls)
}

func renderStep(out io.Writer, step engine.StepResult) {
	fmt.Fprintf(out, "[term %d %s] ", step.Term, step.Phase)
	switch {
	case step.Survival != nil:
		renderSurvival(out, *step.Survival)
	case step.Advancement != nil:
		renderAdvancement(out, *step.Advancement)
	case step.Summary != nil:
		renderSummary(out, *step.Summary)
	case step.Reenlistment != nil:
		renderReenlistment(out, *step.Reenlistment)
	default:
		fmt.Fprintf(out, "%d skill rolls.\n", len(step.SkillRolls))
		renderGrants(out, step.SkillRolls)
	}
}

func renderHistory(out io.Writer, ops []storage.Operation) {
	if len(ops) == 0 {
		fmt.Fprintln(out, "No operations recorded.")
		return
	}
	for _, op := range ops {
		fmt.Fprintf(out, "%4d  %s  term %-2d  %-10s  %s\n",
			op.Seq, op.Timestamp.Format(time.RFC3339), op.Term, op.Name, op.Outcome)
	}
}

func signed(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%+d", n)
}
