package model

import (
	"reflect"
	"testing"
)

func TestNurse_HasQualification(t *testing.T) {
	n := &Nurse{
		ID:             "N01",
		Qualifications: map[string]bool{"ICU": true, "Charge": true},
	}

	tests := []struct {
		qual     string
		expected bool
	}{
		{"ICU", true},
		{"Charge", true},
		{"Pediatric", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.qual, func(t *testing.T) {
			if result := n.HasQualification(tt.qual); result != tt.expected {
				t.Errorf("HasQualification(%s) = %v, expected %v", tt.qual, result, tt.expected)
			}
		})
	}
}

func TestNurse_QualificationList(t *testing.T) {
	n := &Nurse{
		Qualifications: map[string]bool{"Surgical": true, "ICU": true, "Charge": true},
	}

	expected := []string{"Charge", "ICU", "Surgical"}
	if got := n.QualificationList(); !reflect.DeepEqual(got, expected) {
		t.Errorf("QualificationList() = %v, expected %v", got, expected)
	}
}

func TestRoom_RequirementList(t *testing.T) {
	r := &Room{
		RequiredQualifications: map[string]bool{"ICU": true, "Critical": true},
	}

	expected := []string{"Critical", "ICU"}
	if got := r.RequirementList(); !reflect.DeepEqual(got, expected) {
		t.Errorf("RequirementList() = %v, expected %v", got, expected)
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		day      string
		expected bool
	}{
		{"Sat", true},
		{"Sun", true},
		{"Mon", false},
		{"Fri", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			if result := IsWeekend(tt.day); result != tt.expected {
				t.Errorf("IsWeekend(%s) = %v, expected %v", tt.day, result, tt.expected)
			}
		})
	}
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		day      string
		expected int
	}{
		{"Mon", 0},
		{"Wed", 2},
		{"Sun", 6},
		{"Monday", -1},
		{"", -1},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			if result := DayIndex(tt.day); result != tt.expected {
				t.Errorf("DayIndex(%s) = %d, expected %d", tt.day, result, tt.expected)
			}
		})
	}
}

func TestEntities_Defaults(t *testing.T) {
	e := &Entities{
		Demand:      map[DemandKey]int{{Day: "Mon", RoomID: "R1", Shift: "Day"}: 2},
		Preferences: map[PrefKey]int{{NurseID: "N01", Day: "Mon", Shift: "Day"}: 3},
	}

	// 缺失记录默认为0
	if got := e.DemandAt("Tue", "R1", "Day"); got != 0 {
		t.Errorf("缺失需求应为0，实际为 %d", got)
	}
	if got := e.PreferenceAt("N01", "Tue", "Day"); got != 0 {
		t.Errorf("缺失偏好应为0，实际为 %d", got)
	}
	if got := e.DemandAt("Mon", "R1", "Day"); got != 2 {
		t.Errorf("DemandAt = %d, expected 2", got)
	}
	if got := e.PreferenceAt("N01", "Mon", "Day"); got != 3 {
		t.Errorf("PreferenceAt = %d, expected 3", got)
	}
}
