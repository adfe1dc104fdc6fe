// file: internals/features/services/burial/route/burial_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "gerejaku_backend/internals/features/services/burial/controller"
	"gerejaku_backend/internals/mailer"
)

func BurialRoutes(api fiber.Router, db *gorm.DB, n mailer.Notifier) {
	ctl := controller.NewBurialController(db, n)

	grp := api.Group("/burials")
	grp.Get("/", ctl.List)
	grp.Get("/export/excel", ctl.ExportExcel)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
