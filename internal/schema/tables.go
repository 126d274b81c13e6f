package schema

// 三张工作表的固定布局。单个部署只有一种表结构，
// 所有读写都必须经由这里声明的映射，不允许散落的魔法列号。

// Users 是账号表：email 为唯一键，password 明文（默认等于 email）。
var Users = Table{
	Name: "users",
	Key:  "email",
	Columns: []Column{
		{Name: "email", Header: "email"},
		{Name: "password", Header: "password"},
		{Name: "name", Header: "name"},
		{Name: "role", Header: "role"},
		{Name: "creator_email", Header: "creator_email"},
		{Name: "created_at", Header: "created_at"},
	},
}

// Settings 是单例键值表，目前只有 logo 一个键。
var Settings = Table{
	Name: "system_settings",
	Key:  "key",
	Columns: []Column{
		{Name: "key", Header: "key"},
		{Name: "value", Header: "value"},
	},
}

// Resumes 是履历表的完整 89 列布局（最新版式）。
// 分组：基本资料、学历 1..3、工作经历 1..4、技能自传、
// 分店问卷（resume_type=Branch 时使用）、通用问卷、审核与面试信息。
var Resumes = Table{
	Name: "resumes",
	Key:  "email",
	Columns: []Column{
		{Name: "email", Header: "email"},
		{Name: "status", Header: "status", Default: "New"},
		{Name: "resume_type", Header: "resume_type", Default: "HQ"},

		{Name: "name_cn", Header: "name_cn"},
		{Name: "name_en", Header: "name_en"},
		{Name: "phone", Header: "phone"},
		{Name: "address", Header: "address"},
		{Name: "dob", Header: "dob"},
		{Name: "height", Header: "height"},
		{Name: "weight", Header: "weight"},
		{Name: "blood_type", Header: "blood_type"},
		{Name: "marital_status", Header: "marital_status"},
		{Name: "emergency_contact_name", Header: "emergency_contact_name"},
		{Name: "emergency_contact_phone", Header: "emergency_contact_phone"},
		{Name: "emergency_contact_relation", Header: "emergency_contact_relation"},

		{Name: "edu1_school", Header: "edu1_school"},
		{Name: "edu1_major", Header: "edu1_major"},
		{Name: "edu1_degree", Header: "edu1_degree"},
		{Name: "edu1_state", Header: "edu1_state"},
		{Name: "edu1_start", Header: "edu1_start"},
		{Name: "edu1_end", Header: "edu1_end"},
		{Name: "edu2_school", Header: "edu2_school"},
		{Name: "edu2_major", Header: "edu2_major"},
		{Name: "edu2_degree", Header: "edu2_degree"},
		{Name: "edu2_state", Header: "edu2_state"},
		{Name: "edu2_start", Header: "edu2_start"},
		{Name: "edu2_end", Header: "edu2_end"},
		{Name: "edu3_school", Header: "edu3_school"},
		{Name: "edu3_major", Header: "edu3_major"},
		{Name: "edu3_degree", Header: "edu3_degree"},
		{Name: "edu3_state", Header: "edu3_state"},
		{Name: "edu3_start", Header: "edu3_start"},
		{Name: "edu3_end", Header: "edu3_end"},

		{Name: "exp1_company", Header: "exp1_company"},
		{Name: "exp1_title", Header: "exp1_title"},
		{Name: "exp1_start", Header: "exp1_start"},
		{Name: "exp1_end", Header: "exp1_end"},
		{Name: "exp1_salary", Header: "exp1_salary"},
		{Name: "exp1_supervisor", Header: "exp1_supervisor"},
		{Name: "exp1_supervisor_phone", Header: "exp1_supervisor_phone"},
		{Name: "exp1_leaving_reason", Header: "exp1_leaving_reason"},
		{Name: "exp2_company", Header: "exp2_company"},
		{Name: "exp2_title", Header: "exp2_title"},
		{Name: "exp2_start", Header: "exp2_start"},
		{Name: "exp2_end", Header: "exp2_end"},
		{Name: "exp2_salary", Header: "exp2_salary"},
		{Name: "exp2_supervisor", Header: "exp2_supervisor"},
		{Name: "exp2_supervisor_phone", Header: "exp2_supervisor_phone"},
		{Name: "exp2_leaving_reason", Header: "exp2_leaving_reason"},
		{Name: "exp3_company", Header: "exp3_company"},
		{Name: "exp3_title", Header: "exp3_title"},
		{Name: "exp3_start", Header: "exp3_start"},
		{Name: "exp3_end", Header: "exp3_end"},
		{Name: "exp3_salary", Header: "exp3_salary"},
		{Name: "exp3_supervisor", Header: "exp3_supervisor"},
		{Name: "exp3_supervisor_phone", Header: "exp3_supervisor_phone"},
		{Name: "exp3_leaving_reason", Header: "exp3_leaving_reason"},
		{Name: "exp4_company", Header: "exp4_company"},
		{Name: "exp4_title", Header: "exp4_title"},
		{Name: "exp4_start", Header: "exp4_start"},
		{Name: "exp4_end", Header: "exp4_end"},
		{Name: "exp4_salary", Header: "exp4_salary"},
		{Name: "exp4_supervisor", Header: "exp4_supervisor"},
		{Name: "exp4_supervisor_phone", Header: "exp4_supervisor_phone"},
		{Name: "exp4_leaving_reason", Header: "exp4_leaving_reason"},

		{Name: "skills", Header: "skills"},
		{Name: "self_intro", Header: "self_intro"},

		{Name: "branch_region", Header: "branch_region"},
		{Name: "branch_locations", Header: "branch_locations"},
		{Name: "branch_rotation", Header: "branch_rotation"},
		{Name: "branch_shift", Header: "branch_shift"},

		{Name: "survey_source", Header: "survey_source"},
		{Name: "survey_referrer", Header: "survey_referrer"},
		{Name: "survey_teaching_exp", Header: "survey_teaching_exp"},
		{Name: "survey_travel_history", Header: "survey_travel_history"},
		{Name: "survey_health", Header: "survey_health"},
		{Name: "survey_military", Header: "survey_military"},
		{Name: "survey_dependents", Header: "survey_dependents"},
		{Name: "survey_financial", Header: "survey_financial"},
		{Name: "survey_commute", Header: "survey_commute"},

		{Name: "hr_comment", Header: "hr_comment"},
		{Name: "interview_date", Header: "interview_date"},
		{Name: "interview_time", Header: "interview_time"},
		{Name: "interview_location", Header: "interview_location"},
		{Name: "interview_department", Header: "interview_department"},
		{Name: "interview_manager", Header: "interview_manager"},
		{Name: "interview_notes", Header: "interview_notes"},

		{Name: "created_at", Header: "created_at"},
		{Name: "updated_at", Header: "updated_at"},
	},
}
