package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/lot"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/application/stock"
	"github.com/jhoicas/tea-coop-api/internal/application/usecase"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC      *stock.LedgerUseCase
	LotUC        *lot.RegistryUseCase
	ValuationUC  *valuation.LedgerUseCase
	SettlementUC *sale.SettlementUseCase
	ReceiptUC    *sale.ReceiptUseCase
	TeaTypeUC    *usecase.TeaTypeUseCase
	BrokerUC     *usecase.BrokerUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Toda la superficie exige Bearer Token;
// las mutaciones administrativas exigen además el rol employee.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	employeeOnly := RequireRole(RoleEmployee)

	// Stock (el libro de producción lo lleva el empleado)
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/", employeeOnly, stockHandler.RecordEntry)
	stockGroup.Get("/", stockHandler.Snapshot)
	stockGroup.Patch("/entries/:entryId", employeeOnly, stockHandler.Adjust)
	stockGroup.Delete("/entries/:entryId", employeeOnly, stockHandler.DeleteEntry)
	stockGroup.Get("/:teaTypeId/available", stockHandler.Summary)
	stockGroup.Get("/:teaTypeId", stockHandler.ListByTeaType)

	// Lots. La ruta estática /available va antes que /:lotNumber.
	lots := api.Group("/lots")
	lotHandler := NewLotHandler(deps.LotUC)
	valuationHandler := NewValuationHandler(deps.ValuationUC)
	lots.Post("/", employeeOnly, lotHandler.Create)
	lots.Get("/", lotHandler.List)
	lots.Get("/available", lotHandler.ListAvailable)
	lots.Get("/:lotNumber", lotHandler.GetByNumber)
	lots.Put("/:lotNumber", employeeOnly, lotHandler.Update)
	lots.Delete("/:lotNumber", employeeOnly, lotHandler.Delete)
	lots.Post("/:lotNumber/valuation", RequireRole(RoleBroker, RoleEmployee), valuationHandler.Submit)

	// Valuations
	valuations := api.Group("/valuations")
	valuations.Get("/confirmed", valuationHandler.ListConfirmed)
	valuations.Get("/confirmed/broker/:brokerId", valuationHandler.ListConfirmedByBroker)
	valuations.Get("/lot/:lotNumber", valuationHandler.ListByLot)
	valuations.Post("/:valuationId/confirm", employeeOnly, valuationHandler.Confirm)
	valuations.Put("/:valuationId", RequireRole(RoleBroker, RoleEmployee), valuationHandler.UpdatePrice)
	valuations.Delete("/:valuationId", RequireRole(RoleBroker, RoleEmployee), valuationHandler.Delete)

	// Sold lots. El precio de venta lo registra el corredor que cerró el trato
	// o el empleado en su nombre, igual que las valoraciones.
	soldLots := api.Group("/sold-lots")
	soldLotHandler := NewSoldLotHandler(deps.SettlementUC, deps.ReceiptUC)
	soldLots.Post("/", RequireRole(RoleBroker, RoleEmployee), soldLotHandler.AddOrUpdate)
	soldLots.Get("/", soldLotHandler.ListAll)
	soldLots.Get("/broker/:brokerId", soldLotHandler.ListByBroker)
	soldLots.Get("/:saleId/receipt", soldLotHandler.Receipt)
	soldLots.Patch("/:saleId/payment", employeeOnly, soldLotHandler.UpdatePaymentStatus)
	soldLots.Delete("/:saleId", employeeOnly, soldLotHandler.Delete)

	// Tea types (catálogo de referencia)
	teaTypes := api.Group("/tea-types")
	teaTypeHandler := NewTeaTypeHandler(deps.TeaTypeUC)
	teaTypes.Post("/", employeeOnly, teaTypeHandler.Create)
	teaTypes.Get("/", teaTypeHandler.List)
	teaTypes.Get("/:id", teaTypeHandler.GetByID)
	teaTypes.Delete("/:id", employeeOnly, teaTypeHandler.Delete)

	// Brokers (identidad para joins de valoraciones y ventas)
	brokers := api.Group("/brokers")
	brokerHandler := NewBrokerHandler(deps.BrokerUC)
	brokers.Post("/", employeeOnly, brokerHandler.Create)
	brokers.Get("/", brokerHandler.List)
	brokers.Get("/:id", brokerHandler.GetByID)
}
