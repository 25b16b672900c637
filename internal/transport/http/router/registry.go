package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts routes under the /api group.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// RootModule mounts routes directly on the engine.
type RootModule interface{ MountRoot(*gin.Engine) }

// Modules may implement Priority to be mounted earlier (lower first, default 100).
type prioritizer interface{ Priority() int }

// Registry collects route modules for one engine.
type Registry struct {
	apiMods  []APIModule
	rootMods []RootModule
}

// Register sorts each module into the lists it qualifies for; a module may
// be both.
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.apiMods = append(r.apiMods, m)
		}
		if m, ok := mod.(RootModule); ok {
			r.rootMods = append(r.rootMods, m)
		}
	}
}

func (r *Registry) MountAll(engine *gin.Engine, api *gin.RouterGroup) {
	roots := append([]RootModule(nil), r.rootMods...)
	sort.SliceStable(roots, func(i, j int) bool { return priorityOf(roots[i]) < priorityOf(roots[j]) })
	for _, m := range roots {
		m.MountRoot(engine)
	}

	apis := append([]APIModule(nil), r.apiMods...)
	sort.SliceStable(apis, func(i, j int) bool { return priorityOf(apis[i]) < priorityOf(apis[j]) })
	for _, m := range apis {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
