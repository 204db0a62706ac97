package model

type BranchType string

const (
	BranchTypeMain      BranchType = "main"
	BranchTypeSatellite BranchType = "satellite"
)

// Branch is a physical clinic site. The set of branches is fixed per
// deployment; domain data is scoped by branch id.
type Branch struct {
	Base
	Name    string     `db:"name" json:"name"`
	Code    string     `db:"code" json:"code"`
	Address string     `db:"address" json:"address"`
	Phone   string     `db:"phone" json:"phone"`
	Type    BranchType `db:"type" json:"type"`
	Timestamps
}
