// Package route turns a plain business function into an HTTP endpoint.
//
// A Route wraps func(context.Context, In) (Out, error) and, for every
// request, runs the same pipeline:
//
//  1. auth check: a rejection is written as-is and stops the request
//  2. method check: a mismatch is answered with 400
//  3. input: POST decodes the JSON body into In, GET collects the query
//     string into a flat string map (last value wins) and converts it to In
//  4. call the function
//  5. 200 {"data": out} on success, 500 {"error": ...} on any failure
//
// Nothing escapes the pipeline: returned errors, decode failures and panics
// all become a logged 500 response.
//
// The package does not depend on a web framework. Hosts implement Exchange;
// see route/ginroute and route/httproute.
//
//	greet := route.New(func(ctx context.Context, in GreetInput) (Greeting, error) {
//	    return Greeting{Message: "Hello " + in.Name + "!"}, nil
//	}, route.WithAuth(route.BearerToken(secret)), route.WithName("greet"))
//
//	engine.POST("/api/hello", ginroute.Bind(greet))
package route
