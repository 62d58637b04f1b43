// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the workspace client from the
// configuration and injects it into every tool. No business logic lives
// here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/oculairmedia/huly-mcp-server/internal/config"
	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server for the configured workspace, with all
// tools registered.
func New(cfg *config.Config) *server.MCPServer {
	client := huly.NewHTTPClient(cfg.URL, cfg.Workspace, cfg.Token, cfg.Timeout)
	return NewWithClient(client)
}

// NewWithClient creates the MCP server against an explicit client.
// Split out so tests can run the full tool surface against the
// in-memory client.
func NewWithClient(client huly.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"huly-mcp-server",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Deletion & impact tools ---

	deleteIssue := tools.NewDeleteIssueTool(client)
	s.AddTool(deleteIssue.Definition(), deleteIssue.Handle)

	deleteProject := tools.NewDeleteProjectTool(client)
	s.AddTool(deleteProject.Definition(), deleteProject.Handle)

	archiveProject := tools.NewArchiveProjectTool(client)
	s.AddTool(archiveProject.Definition(), archiveProject.Handle)

	deleteComponent := tools.NewDeleteComponentTool(client)
	s.AddTool(deleteComponent.Definition(), deleteComponent.Handle)

	deleteMilestone := tools.NewDeleteMilestoneTool(client)
	s.AddTool(deleteMilestone.Definition(), deleteMilestone.Handle)

	bulkDelete := tools.NewBulkDeleteIssuesTool(client)
	s.AddTool(bulkDelete.Definition(), bulkDelete.Handle)

	issueImpact := tools.NewAnalyzeIssueImpactTool(client)
	s.AddTool(issueImpact.Definition(), issueImpact.Handle)

	projectImpact := tools.NewAnalyzeProjectImpactTool(client)
	s.AddTool(projectImpact.Definition(), projectImpact.Handle)

	// --- Template tools ---

	createTemplate := tools.NewCreateTemplateTool(client)
	s.AddTool(createTemplate.Definition(), createTemplate.Handle)

	listTemplates := tools.NewListTemplatesTool(client)
	s.AddTool(listTemplates.Definition(), listTemplates.Handle)

	searchTemplates := tools.NewSearchTemplatesTool(client)
	s.AddTool(searchTemplates.Definition(), searchTemplates.Handle)

	templateDetails := tools.NewGetTemplateDetailsTool(client)
	s.AddTool(templateDetails.Definition(), templateDetails.Handle)

	updateTemplate := tools.NewUpdateTemplateTool(client)
	s.AddTool(updateTemplate.Definition(), updateTemplate.Handle)

	addChild := tools.NewAddChildTemplateTool(client)
	s.AddTool(addChild.Definition(), addChild.Handle)

	removeChild := tools.NewRemoveChildTemplateTool(client)
	s.AddTool(removeChild.Definition(), removeChild.Handle)

	deleteTemplate := tools.NewDeleteTemplateTool(client)
	s.AddTool(deleteTemplate.Definition(), deleteTemplate.Handle)

	issueFromTemplate := tools.NewCreateIssueFromTemplateTool(client)
	s.AddTool(issueFromTemplate.Definition(), issueFromTemplate.Handle)

	return s
}

// serverInstructions is shown to MCP clients on initialize.
func serverInstructions() string {
	return `Huly project-tracker tools.

Deletion tools cascade by default: deleting an issue removes its whole
sub-issue tree, deleting a project removes its issues, components,
milestones and templates. Every deletion supports dry_run to preview the
impact first; impact-analysis tools do the same without deleting.
Deletions blocked by impact analysis can be overridden with force.
huly_archive_project is the reversible alternative to project deletion.`
}
