package routes

import (
	"crypto/rsa"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/controllers"
	"github.com/zsmartex/coreledger/controllers/helpers"
	"github.com/zsmartex/coreledger/controllers/integration_controllers"
	"github.com/zsmartex/coreledger/controllers/ledger_controllers"
	"github.com/zsmartex/coreledger/routes/middlewares"
	"github.com/zsmartex/coreledger/services/ledger_service"
)

var AdminRoles = []string{"admin", "superadmin", "service"}

type Options struct {
	PublicKey *rsa.PublicKey
	// Cache enables the Idempotency-Key middleware on writes when set.
	Cache  middlewares.IdempotencyCache
	Logger logrus.FieldLogger
}

type route struct {
	method  string
	path    string
	handler fiber.Handler
}

func mount(router fiber.Router, prefix string, routes []route, endpoints []controllers.Endpoint) []controllers.Endpoint {
	for _, r := range routes {
		router.Add(r.method, r.path, r.handler)
		endpoints = append(endpoints, controllers.Endpoint{Method: r.method, Path: prefix + r.path})
	}

	return endpoints
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := 500
	key := "server.internal_error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if code == 404 {
			key = "server.method.not_found"
		}
	}

	return c.Status(code).JSON(helpers.Errors{
		Errors: []string{key},
	})
}

func SetupRouter(ledger *ledger_service.LedgerService, options Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	public := controllers.NewPublicController()
	ledger_controller := ledger_controllers.NewController(ledger)
	integration := integration_controllers.NewController(ledger)

	endpoints := make([]controllers.Endpoint, 0)

	endpoints = mount(app.Group("/api/v1/public"), "/api/v1/public", []route{
		{fiber.MethodGet, "/health", public.GetHealth},
		{fiber.MethodGet, "/endpoints", public.GetEndpoints},
		{fiber.MethodGet, "/timestamp", public.GetTimestamp},
	}, endpoints)

	private := []fiber.Handler{
		middlewares.Authenticate(options.PublicKey),
		middlewares.RequireRole(AdminRoles...),
	}
	if options.Cache != nil {
		private = append(private, middlewares.Idempotency(options.Cache, options.Logger))
	}

	api := app.Group("/api/v1", private...)

	endpoints = mount(api, "/api/v1", []route{
		{fiber.MethodPost, "/transactions", ledger_controller.CreateTransaction},
		{fiber.MethodGet, "/transactions/:id", ledger_controller.GetTransaction},
		{fiber.MethodPost, "/accounts/charge", ledger_controller.ChargeAccount},
		{fiber.MethodGet, "/accounts/:owner_id/:kind", ledger_controller.GetAccount},
	}, endpoints)

	endpoints = mount(api.Group("/integration"), "/api/v1/integration", []route{
		{fiber.MethodPost, "/customers", integration.OnboardCustomer},
		{fiber.MethodGet, "/customers/:id", integration.GetCustomer},
		{fiber.MethodGet, "/customers/:id/wallet-balance", integration.GetWalletBalance},

		{fiber.MethodPost, "/drivers", integration.OnboardDriver},
		{fiber.MethodGet, "/drivers/:id", integration.GetDriver},
		{fiber.MethodPost, "/drivers/:id/earnings", integration.AddDriverEarnings},
		{fiber.MethodPost, "/drivers/:id/rewards", integration.AddDriverReward},

		{fiber.MethodPost, "/restaurants", integration.OnboardPartner},
		{fiber.MethodGet, "/restaurants/:id", integration.GetPartner},
		{fiber.MethodPost, "/restaurants/:id/earnings", integration.AddPartnerEarnings},
		{fiber.MethodPost, "/restaurants/:id/settlement", integration.SettlePartner},

		{fiber.MethodPost, "/vendors", integration.OnboardPartner},
		{fiber.MethodGet, "/vendors/:id", integration.GetPartner},
		{fiber.MethodPost, "/vendors/:id/bills", integration.CreateVendorBill},
		{fiber.MethodPost, "/vendors/:id/settlement", integration.SettlePartner},

		{fiber.MethodPost, "/wallet/charge", integration.ChargeWallet},
		{fiber.MethodPost, "/wallet/deduct", integration.DeductWallet},
		{fiber.MethodGet, "/wallet/:id/balance", integration.GetWalletBalance},

		{fiber.MethodPost, "/orders/:order_id/cancel", integration.CancelOrder},
		{fiber.MethodPost, "/orders/:order_id/return", integration.ReturnOrder},
		{fiber.MethodPost, "/orders/:type", integration.CreateOrderPayment},
	}, endpoints)

	public.SetEndpoints(endpoints)

	return app
}
