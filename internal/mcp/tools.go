package mcp

import (
	"context"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"
	"waveplan/internal/domain/project"
	"waveplan/internal/domain/workspace"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type projectRef struct {
	ProjectID string `json:"project_id" jsonschema:"Project identifier"`
}

type createProjectInput struct {
	ID       string `json:"id,omitempty" jsonschema:"Optional project id, generated when omitted"`
	Name     string `json:"name" jsonschema:"Project display name"`
	Instance string `json:"instance,omitempty" jsonschema:"Source environment label"`
}

type importInventoryInput struct {
	ProjectID string             `json:"project_id"`
	Snapshot  inventory.Snapshot `json:"snapshot" jsonschema:"Full inventory payload replacing the project snapshot"`
}

type snapshotOutput struct {
	Snapshot *inventory.Snapshot `json:"snapshot"`
	Version  int64               `json:"version"`
	Changed  bool                `json:"changed"`
}

type renameProjectInput struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

type addGroupInput struct {
	ProjectID string `json:"project_id"`
	ID        string `json:"id,omitempty" jsonschema:"Optional id, generated when omitted"`
	Name      string `json:"name"`
}

type idsInput struct {
	ProjectID string   `json:"project_id"`
	IDs       []string `json:"ids"`
}

type nodesToAppInput struct {
	ProjectID     string   `json:"project_id"`
	NodeIDs       []string `json:"node_ids"`
	ApplicationID string   `json:"application_id"`
}

type nodesToMoveGroupInput struct {
	ProjectID   string   `json:"project_id"`
	NodeIDs     []string `json:"node_ids"`
	MoveGroupID string   `json:"move_group_id"`
}

type appsToMoveGroupInput struct {
	ProjectID      string   `json:"project_id"`
	ApplicationIDs []string `json:"application_ids"`
	MoveGroupID    string   `json:"move_group_id"`
}

type assignPropertyInput struct {
	ProjectID string   `json:"project_id"`
	NodeIDs   []string `json:"node_ids"`
	Property  string   `json:"property" jsonschema:"Custom property name"`
	Value     string   `json:"value"`
}

type bulkRemoveInput struct {
	ProjectID      string             `json:"project_id"`
	NodeIDs        []string           `json:"node_ids"`
	Mode           planner.RemoveMode `json:"mode" jsonschema:"One of all, selected, all_except_selected"`
	ApplicationIDs []string           `json:"application_ids,omitempty" jsonschema:"Selected applications for the selected modes"`
}

type exclusionInput struct {
	ProjectID string               `json:"project_id"`
	IDs       []string             `json:"ids"`
	Kind      inventory.EntityKind `json:"kind" jsonschema:"node or application"`
}

type propertyDefsInput struct {
	ProjectID string                   `json:"project_id"`
	Scope     planner.PropertyScope    `json:"scope,omitempty" jsonschema:"node (default) or app"`
	Defs      []*inventory.PropertyDef `json:"defs"`
}

type removePropertyDefsInput struct {
	ProjectID string                `json:"project_id"`
	Scope     planner.PropertyScope `json:"scope,omitempty" jsonschema:"node (default) or app"`
	IDs       []string              `json:"ids" jsonschema:"Property definition ids"`
}

type updateMetadataInput struct {
	ProjectID string `json:"project_id"`
	Instance  string `json:"instance,omitempty" jsonschema:"Source environment label"`
	Size      int64  `json:"size,omitempty" jsonschema:"Declared inventory size"`
}

type propertyValuesInput struct {
	ProjectID string   `json:"project_id"`
	Property  string   `json:"property"`
	Values    []string `json:"values"`
}

type dragDropInput struct {
	ProjectID  string                 `json:"project_id"`
	Descriptor planner.DropDescriptor `json:"descriptor"`
}

type versionOutput struct {
	Version int64 `json:"version"`
	Changed bool  `json:"changed"`
}

type statusOutput struct {
	Status string `json:"status"`
}

func registerTools(server *sdkmcp.Server, ws WorkspaceService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new migration project with an empty inventory",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := ws.Create(ctx, workspace.CreateRequest{ID: in.ID, Name: in.Name, Instance: in.Instance})
		return nil, proj, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all migration projects",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, []project.Project, error) {
		projects, err := ws.List(ctx)
		return nil, projects, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get metadata for a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectRef) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := ws.Get(ctx, in.ProjectID)
		return nil, proj, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and all of its saved snapshots",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectRef) (*sdkmcp.CallToolResult, statusOutput, error) {
		if err := ws.Delete(ctx, in.ProjectID); err != nil {
			return nil, statusOutput{}, MapError(err)
		}
		return nil, statusOutput{Status: "deleted"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_inventory",
		Description: "Replace a project's inventory snapshot with an imported payload and persist it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in importInventoryInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := ws.Import(ctx, in.ProjectID, &in.Snapshot)
		return nil, proj, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_snapshot",
		Description: "Get the current working inventory snapshot of a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectRef) (*sdkmcp.CallToolResult, *snapshotOutput, error) {
		var out *snapshotOutput
		err := ws.With(ctx, in.ProjectID, func(e *planner.Engine) error {
			out = &snapshotOutput{Snapshot: e.Snapshot(), Version: e.Version(), Changed: e.Changed()}
			return nil
		})
		return nil, out, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_project",
		Description: "Persist the working snapshot under the next revision",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectRef) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := ws.Save(ctx, in.ProjectID)
		return nil, proj, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_project",
		Description: "Discard a project's open editing session; unsaved edits are lost",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectRef) (*sdkmcp.CallToolResult, statusOutput, error) {
		ws.Close(in.ProjectID)
		return nil, statusOutput{Status: "closed"}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_project",
		Description: "Rename the project inside the working snapshot",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in renameProjectInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) { e.Rename(in.Name) })
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_application",
		Description: "Add a new empty application",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addGroupInput) (*sdkmcp.CallToolResult, *inventory.Group, error) {
		var app *inventory.Group
		err := ws.With(ctx, in.ProjectID, func(e *planner.Engine) error {
			app = e.AddApplication(in.ID, in.Name)
			return nil
		})
		return nil, app, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_move_group",
		Description: "Add a new empty move group (migration wave)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addGroupInput) (*sdkmcp.CallToolResult, *inventory.MoveGroup, error) {
		var mg *inventory.MoveGroup
		err := ws.With(ctx, in.ProjectID, func(e *planner.Engine) error {
			mg = e.AddMoveGroup(in.ID, in.Name)
			return nil
		})
		return nil, mg, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_applications",
		Description: "Delete applications; member devices are kept, move group references are stripped",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idsInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) { e.RemoveApplications(in.IDs) })
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_move_groups",
		Description: "Delete move groups; devices pointing at them become un-grouped",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idsInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) { e.RemoveMoveGroups(in.IDs) })
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_devices",
		Description: "Delete devices from the inventory, stripping them from every group",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idsInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) { e.DeleteNodes(in.IDs) })
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "copy_devices_to_application",
		Description: "Add devices to an application without removing them elsewhere",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in nodesToAppInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.CopyNodesToApp(in.NodeIDs, in.ApplicationID)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_devices_to_application",
		Description: "Move devices into an application, removing them from all other applications",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in nodesToAppInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.MoveNodesToApp(in.NodeIDs, in.ApplicationID)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_devices_to_move_group",
		Description: "Reassign devices to a move group; a device belongs to at most one move group",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in nodesToMoveGroupInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.MoveNodesToMoveGroup(in.NodeIDs, in.MoveGroupID)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_applications_to_move_group",
		Description: "Add applications to a move group; applications may belong to several move groups",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in appsToMoveGroupInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.AddAppsToMoveGroup(in.ApplicationIDs, in.MoveGroupID)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_applications_from_move_group",
		Description: "Remove applications from a move group",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in appsToMoveGroupInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.RemoveAppsFromMoveGroup(in.ApplicationIDs, in.MoveGroupID)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "assign_property_value",
		Description: "Set a custom property value on devices",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in assignPropertyInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.AssignPropertyValue(in.NodeIDs, in.Property, in.Value)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_devices_from_applications",
		Description: "Bulk-remove devices from all, only selected, or all-except-selected applications",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in bulkRemoveInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.RemoveNodesFromApps(in.NodeIDs, in.Mode, in.ApplicationIDs)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "exclude",
		Description: "Exclude devices or applications from dependency calculations",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in exclusionInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.Exclude(in.IDs, in.Kind)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "include",
		Description: "Re-include previously excluded devices or applications",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in exclusionInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.Unexclude(in.IDs, in.Kind)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_property_definitions",
		Description: "Add custom property definitions; titles must be unique (case-insensitive)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in propertyDefsInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		var out *versionOutput
		err := ws.With(ctx, in.ProjectID, func(e *planner.Engine) error {
			scope := in.Scope
			if scope == "" {
				scope = planner.ScopeNode
			}
			if err := e.AddPropertyDefs(scope, in.Defs); err != nil {
				return err
			}
			out = &versionOutput{Version: e.Version(), Changed: e.Changed()}
			return nil
		})
		return nil, out, MapError(err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_property_definitions",
		Description: "Remove custom property definitions, clearing the property from every entity carrying it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in removePropertyDefsInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) {
			scope := in.Scope
			if scope == "" {
				scope = planner.ScopeNode
			}
			e.RemovePropertyDefs(scope, in.IDs)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project_metadata",
		Description: "Update the snapshot's source environment label and declared size",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateMetadataInput) (*sdkmcp.CallToolResult, *versionOutput, error) {
		return versionTool(ctx, ws, in.ProjectID, func(e *planner.Engine) {
			e.UpdateMetadata(in.Instance, in.Size)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_property_values",
		Description: "Delete property values, unassigning them from every device",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in propertyValuesInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.DeletePropertyValues(in.Property, in.Values)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "drag_drop",
		Description: "Apply a resolved drag/drop gesture (copy or move between entity grids)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in dragDropInput) (*sdkmcp.CallToolResult, *planner.Result, error) {
		return resultTool(ctx, ws, in.ProjectID, func(e *planner.Engine) *planner.Result {
			return e.ApplyDrop(in.Descriptor)
		})
	})
}

func resultTool(ctx context.Context, ws WorkspaceService, projectID string, fn func(*planner.Engine) *planner.Result) (*sdkmcp.CallToolResult, *planner.Result, error) {
	var res *planner.Result
	err := ws.With(ctx, projectID, func(e *planner.Engine) error {
		res = fn(e)
		return nil
	})
	return nil, res, MapError(err)
}

func versionTool(ctx context.Context, ws WorkspaceService, projectID string, fn func(*planner.Engine)) (*sdkmcp.CallToolResult, *versionOutput, error) {
	var out *versionOutput
	err := ws.With(ctx, projectID, func(e *planner.Engine) error {
		fn(e)
		out = &versionOutput{Version: e.Version(), Changed: e.Changed()}
		return nil
	})
	return nil, out, MapError(err)
}
