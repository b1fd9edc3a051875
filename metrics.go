// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package roadbuilder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	outcomeResolved  = "resolved"
	outcomeNotFound  = "not_found"
	outcomeAmbiguous = "ambiguous"
	outcomeNotReady  = "not_ready"
	outcomeOK        = "ok"
	outcomeFailed    = "failed"
)

var (
	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadbuilder_resolutions_total",
		Help: "Lane resolutions by outcome",
	}, []string{"outcome"})

	prunedLanes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roadbuilder_pruned_lanes_total",
		Help: "Lanes removed because they no longer match their configuration's category",
	})

	decodedConfigs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadbuilder_decoded_configs_total",
		Help: "Configurations read from bundles by outcome",
	}, []string{"outcome"})
)
