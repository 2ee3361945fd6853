// Package handler is the HTTP entry point after the router.
//
// Each resource has one Operate dispatcher that selects a list/get/create/
// update/delete handler from the HTTP method and the presence of a path
// identifier. Handlers extract and normalize parameters, call exactly one
// service operation, and reply with the uniform {code, data} envelope;
// every fault is translated at this boundary and nothing propagates past
// the router.
package handler
