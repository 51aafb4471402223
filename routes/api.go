package routes

import (
	"github.com/gofiber/fiber/v2"

	"refassign-backend/controllers"
	"refassign-backend/middleware"
)

func APIRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", controllers.Login)
	api.Post("/auth/register", controllers.Register)
	api.Get("/auth/current-user", middleware.RequireAuth, controllers.CurrentUser)
	api.Post("/auth/request-reset-password", controllers.RequestPasswordReset)
	api.Post("/auth/reset-password/:token", controllers.ResetPassword)

	// Everything below requires a valid token.
	protected := api.Use(middleware.RequireAuth)

	// Referees
	protected.Get("/referee", controllers.ListReferees)
	protected.Get("/referee/filter", controllers.ListReferees)
	protected.Get("/referee/:id", controllers.GetReferee)
	protected.Post("/referee", controllers.CreateReferee)
	protected.Put("/referee/:id", controllers.UpdateReferee)
	protected.Delete("/referee/:id", controllers.DeleteReferee)

	// Availability ledger
	protected.Get("/availability", controllers.ListAvailability)
	protected.Get("/availability/dates", controllers.GetAvailableDates)
	protected.Get("/availability/unavailable", controllers.GetUnavailableDates)
	protected.Post("/availability", controllers.UpsertAvailability)

	// Appointments
	protected.Get("/appointments", controllers.ListAppointments)
	protected.Get("/appointments/:id", controllers.GetAppointment)
	protected.Post("/appointments", controllers.CreateAppointment)
	protected.Put("/appointments/:id", controllers.UpdateAppointment)
	protected.Delete("/appointments/:id", controllers.DeleteAppointment)
	protected.Post("/appointments/:id/accept", controllers.AcceptAppointment)
	protected.Post("/appointments/:id/decline", controllers.DeclineAppointment)

	// Matches
	protected.Get("/matches", controllers.ListMatches)
	protected.Get("/matches/available_referees", controllers.AvailableReferees)
	protected.Get("/matches/:id", controllers.GetMatch)
	protected.Post("/matches", controllers.CreateMatch)
	protected.Put("/matches/:id", controllers.UpdateMatch)
	protected.Delete("/matches/:id", controllers.DeleteMatch)

	// Venues
	protected.Get("/venues", controllers.ListVenues)
	protected.Get("/venues/:id", controllers.GetVenue)
	protected.Post("/venues", controllers.CreateVenue)
	protected.Put("/venues/:id", controllers.UpdateVenue)
	protected.Delete("/venues/:id", controllers.DeleteVenue)
	protected.Get("/venues/:id/upcoming_matches", controllers.VenueUpcomingMatches)

	// Clubs
	protected.Get("/clubs", controllers.ListClubs)
	protected.Get("/clubs/:id", controllers.GetClub)
	protected.Post("/clubs", controllers.CreateClub)
	protected.Put("/clubs/:id", controllers.UpdateClub)
	protected.Delete("/clubs/:id", controllers.DeleteClub)
	protected.Get("/clubs/:id/home_matches", controllers.ClubHomeMatches)

	// Teams (club read views for the assignment UI)
	protected.Get("/teams", controllers.ListTeams)
	protected.Get("/teams/:id/matches", controllers.TeamMatches)
	protected.Get("/teams/:id/home_matches", controllers.TeamHomeMatches)
	protected.Get("/teams/:id/away_matches", controllers.TeamAwayMatches)
	protected.Get("/teams/:id/venue", controllers.TeamVenue)

	// Notifications, preferences, relatives
	protected.Get("/notifications", controllers.ListNotifications)
	protected.Get("/notifications/:id", controllers.GetNotification)
	protected.Post("/notifications", controllers.CreateNotification)
	protected.Delete("/notifications/:id", controllers.DeleteNotification)

	protected.Get("/preferences", controllers.ListPreferences)
	protected.Get("/preferences/:id", controllers.GetPreference)
	protected.Post("/preferences", controllers.CreatePreference)
	protected.Delete("/preferences/:id", controllers.DeletePreference)

	protected.Get("/relatives", controllers.ListRelatives)
	protected.Get("/relatives/:id", controllers.GetRelative)
	protected.Post("/relatives", controllers.CreateRelative)
	protected.Put("/relatives/:id", controllers.UpdateRelative)
	protected.Delete("/relatives/:id", controllers.DeleteRelative)
}
