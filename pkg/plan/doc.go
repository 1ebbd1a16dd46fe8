// Package plan reads wait plans: YAML documents that describe a composed wait
// strategy.
//
// A plan lists steps that run in order under one shared timeout:
//
//	apiVersion: testpods.devantler.tech/v1alpha1
//	kind: WaitPlan
//	timeout: 2m
//	steps:
//	  - readiness: {}
//	  - log:
//	      pattern: "Started \\w+ in"
//	  - http:
//	      path: /actuator/health
//	      port: 8080
//
// String values may reference environment variables as ${VAR} or
// ${VAR:-default}; they are expanded before the document is parsed.
package plan
