package cluster

import "errors"

// ErrNoClusterFound is returned by Discover when no candidate context answers.
var ErrNoClusterFound = errors.New("no Kubernetes cluster found, start one with: minikube start -p minikit")
