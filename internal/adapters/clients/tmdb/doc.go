// Package tmdb is the anti-corruption layer between the service and The Movie
// Database (TMDB) v3 API.
//
// It is the only package that knows TMDB's endpoint paths, query parameters,
// authentication scheme and JSON shapes. Everything it returns is either a
// domain value or a classified *domain.UpstreamError.
//
// # Endpoints
//
//   - [Client.ListGenres]: GET /genre/movie/list
//   - [Client.GetMovie]: GET /movie/{id}?append_to_response=credits
//   - [Client.ListPopular]: GET /movie/popular, or GET /discover/movie when genres are given
//   - [Client.SearchMovies]: GET /search/movie
//   - [Client.Check]: GET /configuration (readiness)
//
// # Failure classification
//
// Classification happens once, in [Classify], and the kind is never re-derived
// by callers:
//
//   - 429 → rate limited, with the Retry-After hint or 60 seconds
//   - local pacing refusal → rate limited, with the pacing delay
//   - transport error, timeout, open circuit, 5xx → service unavailable
//   - any other non-2xx → generic, carrying the upstream status and status_message
//   - undecodable body → generic with status 500
//
// # Authentication
//
// A v3 API key travels as the api_key query parameter. A v4 read access token
// (a JWT) is sent as a bearer token instead. See [Authenticator].
package tmdb
