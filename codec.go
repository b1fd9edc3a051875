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
	"m4o.io/roadbuilder/internal/decoder"
	"m4o.io/roadbuilder/internal/encoder"
	"m4o.io/roadbuilder/model"
)

// Serialize writes a configuration record at model.CurrentVersion, whatever
// version the configuration was loaded at.  The configuration is not
// modified.
func Serialize(cfg model.Config) ([]byte, error) {
	return encoder.EncodeConfig(cfg)
}

// Deserialize reads a configuration record written at any known schema
// version.  The result has been migrated to model.CurrentVersion.
func Deserialize(b []byte) (model.Config, error) {
	return decoder.DecodeConfig(b)
}
