package record

import (
	"fmt"

	"hiregate/internal/sheetstore"
)

// UserFromRow 物化账号行。
func UserFromRow(row sheetstore.Row) User {
	return User{
		Email:        row.Get("email"),
		Password:     row.Get("password"),
		Name:         row.Get("name"),
		Role:         row.Get("role"),
		CreatorEmail: row.Get("creator_email"),
		CreatedAt:    row.Get("created_at"),
	}
}

// Values 返回账号的字段覆盖映射，键为 users 表的语义字段名。
func (u User) Values() map[string]string {
	return map[string]string{
		"email":         u.Email,
		"password":      u.Password,
		"name":          u.Name,
		"role":          u.Role,
		"creator_email": u.CreatorEmail,
		"created_at":    u.CreatedAt,
	}
}

// ResumeFromRow 物化履历行。未开通的列在 Row 中已是空串。
func ResumeFromRow(row sheetstore.Row) Resume {
	r := Resume{
		Email:      row.Get("email"),
		Status:     row.Get("status"),
		ResumeType: row.Get("resume_type"),
		Identity: Identity{
			NameCN:            row.Get("name_cn"),
			NameEN:            row.Get("name_en"),
			Phone:             row.Get("phone"),
			Address:           row.Get("address"),
			DOB:               row.Get("dob"),
			Height:            row.Get("height"),
			Weight:            row.Get("weight"),
			BloodType:         row.Get("blood_type"),
			MaritalStatus:     row.Get("marital_status"),
			EmergencyName:     row.Get("emergency_contact_name"),
			EmergencyPhone:    row.Get("emergency_contact_phone"),
			EmergencyRelation: row.Get("emergency_contact_relation"),
		},
		Skills:    row.Get("skills"),
		SelfIntro: row.Get("self_intro"),
		Branch: BranchSurvey{
			Region:    row.Get("branch_region"),
			Locations: row.Get("branch_locations"),
			Rotation:  row.Get("branch_rotation"),
			Shift:     row.Get("branch_shift"),
		},
		Survey: Survey{
			Source:        row.Get("survey_source"),
			Referrer:      row.Get("survey_referrer"),
			TeachingExp:   row.Get("survey_teaching_exp"),
			TravelHistory: row.Get("survey_travel_history"),
			Health:        row.Get("survey_health"),
			Military:      row.Get("survey_military"),
			Dependents:    row.Get("survey_dependents"),
			Financial:     row.Get("survey_financial"),
			Commute:       row.Get("survey_commute"),
		},
		HRComment: row.Get("hr_comment"),
		Interview: Interview{
			Date:       row.Get("interview_date"),
			Time:       row.Get("interview_time"),
			Location:   row.Get("interview_location"),
			Department: row.Get("interview_department"),
			Manager:    row.Get("interview_manager"),
			Notes:      row.Get("interview_notes"),
		},
		CreatedAt: row.Get("created_at"),
		UpdatedAt: row.Get("updated_at"),
	}

	for i := range r.Education {
		prefix := fmt.Sprintf("edu%d_", i+1)
		r.Education[i] = Education{
			School: row.Get(prefix + "school"),
			Major:  row.Get(prefix + "major"),
			Degree: row.Get(prefix + "degree"),
			State:  row.Get(prefix + "state"),
			Start:  row.Get(prefix + "start"),
			End:    row.Get(prefix + "end"),
		}
	}
	for i := range r.Employment {
		prefix := fmt.Sprintf("exp%d_", i+1)
		r.Employment[i] = Employment{
			Company:         row.Get(prefix + "company"),
			Title:           row.Get(prefix + "title"),
			Start:           row.Get(prefix + "start"),
			End:             row.Get(prefix + "end"),
			Salary:          row.Get(prefix + "salary"),
			Supervisor:      row.Get(prefix + "supervisor"),
			SupervisorPhone: row.Get(prefix + "supervisor_phone"),
			LeavingReason:   row.Get(prefix + "leaving_reason"),
		}
	}
	return r
}

// Fields 把表单展开成字段覆盖映射，供读改写一次提交。
func (f Form) Fields() map[string]string {
	fields := map[string]string{
		"resume_type": f.ResumeType,

		"name_cn":                    f.Identity.NameCN,
		"name_en":                    f.Identity.NameEN,
		"phone":                      f.Identity.Phone,
		"address":                    f.Identity.Address,
		"dob":                        f.Identity.DOB,
		"height":                     f.Identity.Height,
		"weight":                     f.Identity.Weight,
		"blood_type":                 f.Identity.BloodType,
		"marital_status":             f.Identity.MaritalStatus,
		"emergency_contact_name":     f.Identity.EmergencyName,
		"emergency_contact_phone":    f.Identity.EmergencyPhone,
		"emergency_contact_relation": f.Identity.EmergencyRelation,

		"skills":     f.Skills,
		"self_intro": f.SelfIntro,

		"branch_region":    f.Branch.Region,
		"branch_locations": f.Branch.Locations,
		"branch_rotation":  f.Branch.Rotation,
		"branch_shift":     f.Branch.Shift,

		"survey_source":         f.Survey.Source,
		"survey_referrer":       f.Survey.Referrer,
		"survey_teaching_exp":   f.Survey.TeachingExp,
		"survey_travel_history": f.Survey.TravelHistory,
		"survey_health":         f.Survey.Health,
		"survey_military":       f.Survey.Military,
		"survey_dependents":     f.Survey.Dependents,
		"survey_financial":      f.Survey.Financial,
		"survey_commute":        f.Survey.Commute,
	}

	for i, edu := range f.Education {
		prefix := fmt.Sprintf("edu%d_", i+1)
		fields[prefix+"school"] = edu.School
		fields[prefix+"major"] = edu.Major
		fields[prefix+"degree"] = edu.Degree
		fields[prefix+"state"] = edu.State
		fields[prefix+"start"] = edu.Start
		fields[prefix+"end"] = edu.End
	}
	for i, exp := range f.Employment {
		prefix := fmt.Sprintf("exp%d_", i+1)
		fields[prefix+"company"] = exp.Company
		fields[prefix+"title"] = exp.Title
		fields[prefix+"start"] = exp.Start
		fields[prefix+"end"] = exp.End
		fields[prefix+"salary"] = exp.Salary
		fields[prefix+"supervisor"] = exp.Supervisor
		fields[prefix+"supervisor_phone"] = exp.SupervisorPhone
		fields[prefix+"leaving_reason"] = exp.LeavingReason
	}
	return fields
}

// Fields 返回面试安排的字段覆盖映射。
func (iv Interview) Fields() map[string]string {
	return map[string]string{
		"interview_date":       iv.Date,
		"interview_time":       iv.Time,
		"interview_location":   iv.Location,
		"interview_department": iv.Department,
		"interview_manager":    iv.Manager,
		"interview_notes":      iv.Notes,
	}
}
