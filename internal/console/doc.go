// Package console implements the service-subscription workflow for the
// workspace an App Builder project is bound to. Remote calls go through
// Client and user choices through Prompter; neither is implemented here.
// The workflow records the workspace and organization service lists in the
// project-local CLI configuration before and after subscribing.
package console
