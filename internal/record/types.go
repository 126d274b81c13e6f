package record

// 状态机取值。Approved 为硬终态（生命周期层拒绝后续编辑写入）。
const (
	StatusNew       = "New"
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusReturned  = "Returned"
)

// 账号角色。
const (
	RoleAdmin     = "admin"
	RolePM        = "pm"
	RoleCandidate = "candidate"
)

// 履历类型，Branch 才启用分店问卷子记录。
const (
	TypeHQ     = "HQ"
	TypeBranch = "Branch"
)

// User 是账号表的一行。密码为明文，邀请时默认等于 email。
type User struct {
	Email        string `json:"email"`
	Password     string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	CreatorEmail string `json:"creator_email"`
	CreatedAt    string `json:"created_at"`
}

// Identity 基本资料分组。
type Identity struct {
	NameCN            string `json:"name_cn"`
	NameEN            string `json:"name_en"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	DOB               string `json:"dob"`
	Height            string `json:"height"`
	Weight            string `json:"weight"`
	BloodType         string `json:"blood_type"`
	MaritalStatus     string `json:"marital_status"`
	EmergencyName     string `json:"emergency_contact_name"`
	EmergencyPhone    string `json:"emergency_contact_phone"`
	EmergencyRelation string `json:"emergency_contact_relation"`
}

// Education 学历分组，最多 3 组。
type Education struct {
	School string `json:"school"`
	Major  string `json:"major"`
	Degree string `json:"degree"`
	State  string `json:"state"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Employment 工作经历分组，最多 4 组。
type Employment struct {
	Company         string `json:"company"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Salary          string `json:"salary"`
	Supervisor      string `json:"supervisor"`
	SupervisorPhone string `json:"supervisor_phone"`
	LeavingReason   string `json:"leaving_reason"`
}

// BranchSurvey 分店问卷子记录，resume_type=Branch 时有效。
type BranchSurvey struct {
	Region    string `json:"region"`
	Locations string `json:"locations"`
	Rotation  string `json:"rotation"`
	Shift     string `json:"shift"`
}

// Survey 通用问卷子记录。
type Survey struct {
	Source        string `json:"source"`
	Referrer      string `json:"referrer"`
	TeachingExp   string `json:"teaching_exp"`
	TravelHistory string `json:"travel_history"`
	Health        string `json:"health"`
	Military      string `json:"military"`
	Dependents    string `json:"dependents"`
	Financial     string `json:"financial"`
	Commute       string `json:"commute"`
}

// Interview 面试安排，仅在审核通过时写入。
type Interview struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
	Department string `json:"department"`
	Manager    string `json:"manager"`
	Notes      string `json:"notes"`
}

// Form 是候选人可编辑的字段集合，由 UI 层一次性传入生命周期层。
// 不含 email/status/审核信息——那些由各自的操作负责。
type Form struct {
	ResumeType string        `json:"resume_type"`
	Identity   Identity      `json:"identity"`
	Education  [3]Education  `json:"education"`
	Employment [4]Employment `json:"employment"`
	Skills     string        `json:"skills"`
	SelfIntro  string        `json:"self_intro"`
	Branch     BranchSurvey  `json:"branch"`
	Survey     Survey        `json:"survey"`
}

// Resume 是履历表一行的强类型表示。与表格行的互转只发生在存储适配层边界。
type Resume struct {
	Email      string        `json:"email"`
	Status     string        `json:"status"`
	ResumeType string        `json:"resume_type"`
	Identity   Identity      `json:"identity"`
	Education  [3]Education  `json:"education"`
	Employment [4]Employment `json:"employment"`
	Skills     string        `json:"skills"`
	SelfIntro  string        `json:"self_intro"`
	Branch     BranchSurvey  `json:"branch"`
	Survey     Survey        `json:"survey"`
	HRComment  string        `json:"hr_comment"`
	Interview  Interview     `json:"interview"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
}

// Form 把履历转回可编辑表单，供只读展示或回填。
func (r Resume) Form() Form {
	return Form{
		ResumeType: r.ResumeType,
		Identity:   r.Identity,
		Education:  r.Education,
		Employment: r.Employment,
		Skills:     r.Skills,
		SelfIntro:  r.SelfIntro,
		Branch:     r.Branch,
		Survey:     r.Survey,
	}
}
