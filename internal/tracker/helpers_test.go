package tracker

import (
	"fmt"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// Seed helpers build a workspace on the in-memory client. Ids double as
// readable handles in assertions.

func seedProject(mc *huly.MemClient, id, code string) {
	mc.Put(huly.ClassProject, id, huly.Doc{
		"space":      "core:space:Spaces",
		"identifier": code,
		"name":       code,
		"archived":   false,
		"sequence":   0,
	})
}

func seedIssue(mc *huly.MemClient, id, space, identifier, parentID string) {
	mc.Put(huly.ClassIssue, id, huly.Doc{
		"space":      space,
		"identifier": identifier,
		"title":      "Issue " + identifier,
		"attachedTo": parentID,
	})
}

func seedComponent(mc *huly.MemClient, id, space, label string) {
	mc.Put(huly.ClassComponent, id, huly.Doc{"space": space, "label": label})
}

func seedMilestone(mc *huly.MemClient, id, space, label string) {
	mc.Put(huly.ClassMilestone, id, huly.Doc{"space": space, "label": label})
}

func seedTemplate(mc *huly.MemClient, id, space, title string) {
	mc.Put(huly.ClassTemplate, id, huly.Doc{
		"space":       space,
		"title":       title,
		"description": "",
		"priority":    "Medium",
	})
}

func seedTemplateChild(mc *huly.MemClient, id, space, templateID, title string) {
	mc.Put(huly.ClassTemplateChild, id, huly.Doc{
		"space":           space,
		"attachedTo":      templateID,
		"attachedToClass": huly.ClassTemplate,
		"collection":      "children",
		"title":           title,
	})
}

func seedAccount(mc *huly.MemClient, id, email string) {
	mc.Put(huly.ClassPersonAccount, id, huly.Doc{"space": "core:space:Model", "email": email})
}

// seedTree builds project "proj" (code PROJ) with a three-level issue
// tree:
//
//	PROJ-1
//	├── PROJ-2
//	│   └── PROJ-4
//	└── PROJ-3
func seedTree(mc *huly.MemClient) {
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-1", "")
	seedIssue(mc, "i2", "proj", "PROJ-2", "i1")
	seedIssue(mc, "i3", "proj", "PROJ-3", "i1")
	seedIssue(mc, "i4", "proj", "PROJ-4", "i2")
}

// issueIdent is a shorthand for building expected identifier lists.
func issueIdent(n int) string { return fmt.Sprintf("PROJ-%d", n) }
