package inventory

// EntityKind identifies the kind of entity an operation targets.
type EntityKind string

const (
	KindNode          EntityKind = "node"
	KindApplication   EntityKind = "application"
	KindMoveGroup     EntityKind = "move_group"
	KindPropertyValue EntityKind = "property_value"
)

// Label returns the human-readable name for a kind, pluralized for n.
func (k EntityKind) Label(n int) string {
	var singular, plural string
	switch k {
	case KindNode:
		singular, plural = "compute instance", "compute instances"
	case KindApplication:
		singular, plural = "application", "applications"
	case KindMoveGroup:
		singular, plural = "move group", "move groups"
	case KindPropertyValue:
		singular, plural = "property value", "property values"
	default:
		singular, plural = "item", "items"
	}
	if n == 1 {
		return singular
	}
	return plural
}

// NodeKind distinguishes virtual from physical compute instances.
type NodeKind string

const (
	NodeVirtual  NodeKind = "Virtual"
	NodePhysical NodeKind = "Physical"
)

// Node is a discovered compute instance being migrated.
//
// AppIDs, InMoveGroup and Disabled are derived fields. They are rebuilt from
// group membership and the exclusion list by BuildIndexes after every
// mutation and must never be edited directly.
type Node struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	IPs         []string          `json:"ips,omitempty"`
	Kind        NodeKind          `json:"kind,omitempty"`
	MoveGroupID string            `json:"mgid,omitempty"`
	InMoveGroup bool              `json:"in_move_group,omitempty"`
	CustomProps map[string]string `json:"custom_props,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	AppIDs      []string          `json:"app_ids,omitempty"`
}

// GroupKind discriminates group variants.
type GroupKind string

const (
	GroupApplication GroupKind = "application"
	GroupMoveGroup   GroupKind = "move_group"
	GroupCustom      GroupKind = "custom"
)

// Group is a named set of nodes: an application, or a generic custom group
// keyed by a property name.
type Group struct {
	ID          string            `json:"id"`
	Kind        GroupKind         `json:"kind,omitempty"`
	Name        string            `json:"name"`
	NodeIDs     []string          `json:"node_ids"`
	CustomProps map[string]string `json:"custom_props,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
}

// MoveGroup is a migration wave: applications plus any directly-added nodes.
type MoveGroup struct {
	Group
	GroupIDs []string `json:"group_ids"`
}

// PropertyValueType declares the value type of a custom property.
type PropertyValueType string

const (
	PropertyString  PropertyValueType = "string"
	PropertyInteger PropertyValueType = "integer"
	PropertyFloat   PropertyValueType = "float"
)

// PropertyDef is a user-defined property attachable to nodes or applications.
// StrValues records every distinct string value observed across the project,
// used to populate value pickers.
type PropertyDef struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	ValueType PropertyValueType `json:"value_type"`
	StrValues []string          `json:"str_values,omitempty"`
}

// ExclusionEntry marks a node or application as excluded from dependency
// calculations. The exclusion list is the source of truth; the entity's
// Disabled flag is a cache maintained by BuildIndexes.
type ExclusionEntry struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}
