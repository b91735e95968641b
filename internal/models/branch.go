package models

type Branch struct {
	ID            int64  `json:"id"`
	BusinessID    int64  `json:"business_id,omitempty"`
	Name          string `json:"name"`
	Locality      string `json:"locality,omitempty"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phone_number"`
	StartWorkHour string `json:"start_work_hour"`
	EndWorkHour   string `json:"end_work_hour"`
}

// CitiesBranches is the public landing payload: branches of one business
// grouped by locality.
type CitiesBranches struct {
	BusinessName string              `json:"business_name"`
	Branches     map[string][]Branch `json:"branches"`
}

// FindBranch looks a branch up across all localities. The backend keys
// branches by locality and leaves it out of the entries, so it is filled
// from the key.
func (cb CitiesBranches) FindBranch(id int64) (Branch, bool) {
	for locality, branches := range cb.Branches {
		for _, b := range branches {
			if b.ID == id {
				if b.Locality == "" {
					b.Locality = locality
				}
				return b, true
			}
		}
	}
	return Branch{}, false
}

type BranchInput struct {
	Name          string  `json:"name" binding:"required"`
	Locality      string  `json:"locality" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	PhoneNumber   string  `json:"phone_number" binding:"required"`
	StartWorkHour string  `json:"start_work_hour" binding:"required,hhmm"`
	EndWorkHour   string  `json:"end_work_hour" binding:"required,hhmm"`
	ManagerIDs    []int64 `json:"manager_ids,omitempty"`
}
