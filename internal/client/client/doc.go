// Package client talks to the EatsBalance meals API.
//
// # Overview
//
// Client is the transport contract used by the repositories: Login, Register,
// AddMeal, GetMeals, GetMeal and DeleteMeal. HTTPClient implements it over
// REST/JSON against a fixed base URL:
//
//	POST   /login       {email,password}  -> {token,user:{id,email}}
//	POST   /register    {email,password}  -> {token,user:{id,email}}
//	POST   /meal        Meal              -> {success,message,meal}
//	GET    /meal                          -> [Meal...]
//	GET    /meal/{id}                     -> Meal
//	DELETE /meal/{id}                     -> {success,message,meal}
//
// Every call performs exactly one request. There are no retries, no caching
// and no timeout beyond the caller's context.
//
// # Error Handling
//
// Failures are matched with errors.Is / errors.As:
//
//   - ErrUnavailable: the server could not be reached.
//   - *StatusError (Is ErrRejected, and ErrUnauthorized for 401/403): non-2xx.
//   - ErrMalformedResponse: the body did not decode.
//   - context.Canceled / context.DeadlineExceeded: the caller gave up.
//
// KindOf folds any error into one ErrorKind.
package client
