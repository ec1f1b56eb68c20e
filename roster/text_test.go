/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"reflect"
	"testing"
	"time"

	"github.com/FlippedOut/pb-draw/draw"
)

const registrationCSV = `Attendee First Name,Attendee Last Name,Name of partner/partners - full name,I am registered to play in a tournament at this level:,Gender,Registration Date
Jane,Doe,John Roe,3.0-3.49,F,2025-06-01 10:00:00
John,Roe,Jane Doe,3.0-3.49,M,2025-06-02 10:00:00
Pat,Smith,,4.0+,,2025-06-10 10:00:00
Sam,Lee,jane doe & Pat Smith,Beginner,M,
`

func names(r Roster) []string {
	var ret []string
	for _, p := range r.Players {
		ret = append(ret, p.Name)
	}
	return ret
}

func TestParseText(t *testing.T) {
	r, err := ParseText(registrationCSV)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}

	wantNames := []string{"Jane Doe", "John Roe", "Pat Smith", "Sam Lee"}
	if got := names(r); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("names = %v; want %v", got, wantNames)
	}

	wantSkills := []float64{3.0, 3.0, 4.0, draw.DefaultSkill}
	wantGenders := []draw.Gender{draw.GenderFemale, draw.GenderMale,
		draw.GenderUnset, draw.GenderMale}
	for i, p := range r.Players {
		if p.ID != playerID(i+1) {
			t.Errorf("players[%d].ID = %v; want %v", i, p.ID, playerID(i+1))
		}
		if p.Skill != wantSkills[i] {
			t.Errorf("%v skill = %v; want %v", p.Name, p.Skill, wantSkills[i])
		}
		if p.Gender != wantGenders[i] {
			t.Errorf("%v gender = %v; want %v", p.Name, p.Gender, wantGenders[i])
		}
		if p.PartnerID != "" {
			t.Errorf("%v partnered before confirmation", p.Name)
		}
	}

	wantSugg := []Suggestion{{A: "p1", B: "p2", AName: "Jane Doe",
		BName: "John Roe"}}
	if !reflect.DeepEqual(r.Suggestions, wantSugg) {
		t.Errorf("suggestions = %v; want %v", r.Suggestions, wantSugg)
	}

	if got := r.Division("p3"); got != "4.0+" {
		t.Errorf("Division(p3) = %q; want %q", got, "4.0+")
	}
	if _, ok := r.Registered["p4"]; ok {
		t.Errorf("p4 has a registration time")
	}
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if got := r.Registered["p1"]; !got.Equal(want) {
		t.Errorf("Registered[p1] = %v; want %v", got, want)
	}
}

func TestParseTextTSV(t *testing.T) {
	r, err := ParseText("Name\tPartner\tSkill\nAnn Bell\tCal Dorn\t3.5\nCal Dorn\tAnn Bell\t3.75\n")
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if got := names(r); !reflect.DeepEqual(got, []string{"Ann Bell", "Cal Dorn"}) {
		t.Errorf("names = %v", got)
	}
	if r.Players[1].Skill != 3.75 {
		t.Errorf("skill = %v; want 3.75", r.Players[1].Skill)
	}
	if len(r.Suggestions) != 1 {
		t.Errorf("len(suggestions) = %d; want 1", len(r.Suggestions))
	}
}

func TestParseTextEdgeCases(t *testing.T) {
	r, err := ParseText("   \n")
	if err != nil || len(r.Players) != 0 {
		t.Errorf("ParseText(blank) = %v, %v; want empty roster", r.Players, err)
	}

	r, err = ParseText("Players\nAnn\n\nBob\n")
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if got := names(r); !reflect.DeepEqual(got, []string{"Ann", "Bob"}) {
		t.Errorf("names = %v; want [Ann Bob]", got)
	}

	if _, err := ParseText("foo,bar\n1,2\n"); err == nil {
		t.Errorf("ParseText accepted an unrecognizable header")
	}
}

func TestSkillFromBracket(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3.0-3.49", 3.0},
		{"Intermediate (3.5)", 3.5},
		{"4.0+", 4.0},
		{"5", 5.0},
		{"", draw.DefaultSkill},
		{"Beginner", draw.DefaultSkill},
		{"0", draw.DefaultSkill},
	}
	for _, c := range cases {
		if got := SkillFromBracket(c.in); got != c.want {
			t.Errorf("SkillFromBracket(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestFirstPartnerName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Jane Doe and Pat Smith", "Jane Doe"},
		{"Ann & Bob", "Ann"},
		{"Ann; Bob", "Ann"},
		{"Ann/Bob", "Ann"},
		{"Andy Anderson", "Andy Anderson"},
		{"  ", ""},
	}
	for _, c := range cases {
		if got := firstPartnerName(c.in); got != c.want {
			t.Errorf("firstPartnerName(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
