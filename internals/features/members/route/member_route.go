// file: internals/features/members/route/member_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/members/controller"
)

// MemberRoutes registers the member CRUD for the admin panel.
func MemberRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewMemberController(db)

	grp := api.Group("/members")
	grp.Get("/", ctl.List)
	grp.Get("/export/excel", ctl.ExportExcel)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
