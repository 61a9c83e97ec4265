// Package directory provides static campus reference data.
// These data are maintained manually and updated each semester.
package directory

// Campus is one of the two physical campus sites, with its buildings
// in the order the scheduling system lists them.
type Campus struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Slug        string   `json:"slug"` // key prefix in the table store
	Buildings   []string `json:"buildings"`
}

// TimeSlot is one of the six fixed class period pairs.
type TimeSlot struct {
	Value string `json:"value"` // period-pair code, e.g. "1,2"
	Label string `json:"label"` // human-readable label
}

var campuses = []Campus{
	{
		Name:        "一校区",
		DisplayName: "一校区",
		Slug:        "campus1",
		Buildings: []string{
			"主楼", "8号楼", "其他", "制造楼", "动力楼", "土木楼", "外语学院楼",
			"奥校楼", "新技术楼", "明德楼", "机械楼", "材料学院楼", "校部楼",
			"格物楼", "正心楼", "活动中心", "理学楼", "电机楼", "科学园",
			"管理楼", "综合楼", "致知楼", "节能楼", "诚意楼", "一区体育课场地",
		},
	},
	{
		Name:        "二校区",
		DisplayName: "二校区",
		Slug:        "campus2",
		Buildings: []string{
			"二区主楼", "东配楼", "西配楼", "成和楼", "文体中心", "交通学院楼",
			"土木学院", "土木科研楼", "暖通楼", "环境学院楼", "理化楼",
			"高校寒地实验中心", "二区图书馆", "二区体育课场地",
		},
	},
}

var timeSlots = []TimeSlot{
	{Value: "1,2", Label: "第1-2节 (08:00-09:50)"},
	{Value: "3,4", Label: "第3-4节 (10:10-12:00)"},
	{Value: "5,6", Label: "第5-6节 (14:00-15:50)"},
	{Value: "7,8", Label: "第7-8节 (16:10-18:00)"},
	{Value: "9,10", Label: "第9-10节 (19:00-20:50)"},
	{Value: "11,12", Label: "第11-12节 (21:00-22:50)"},
}

// Campuses returns all campuses. The result shares no backing storage
// with the package data and may be modified by the caller.
func Campuses() []Campus {
	out := make([]Campus, len(campuses))
	for i, c := range campuses {
		out[i] = c
		out[i].Buildings = append([]string(nil), c.Buildings...)
	}
	return out
}

// FindCampus looks up a campus by name.
func FindCampus(name string) (Campus, bool) {
	for _, c := range campuses {
		if c.Name == name {
			cp := c
			cp.Buildings = append([]string(nil), c.Buildings...)
			return cp, true
		}
	}
	return Campus{}, false
}

// CampusSlug maps a campus name to its table-store key prefix.
// Any name other than 一校区 maps to campus2, mirroring the two-campus
// assumption of the scheduling export.
func CampusSlug(name string) string {
	if name == "一校区" {
		return "campus1"
	}
	return "campus2"
}

// HasBuilding reports whether the named campus lists the building.
func HasBuilding(campusName, building string) bool {
	c, ok := FindCampus(campusName)
	if !ok {
		return false
	}
	for _, b := range c.Buildings {
		if b == building {
			return true
		}
	}
	return false
}

// TimeSlots returns the six period-pair codes with labels.
func TimeSlots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlots...)
}

// IsValidSlot reports whether code is one of the six period-pair codes.
func IsValidSlot(code string) bool {
	for _, s := range timeSlots {
		if s.Value == code {
			return true
		}
	}
	return false
}
