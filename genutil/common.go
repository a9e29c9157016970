// Copyright 2021 JNC Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package genutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SyncFile writes contents to path, creating missing parent directories.
func SyncFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("could not write %s: %v", path, err)
	}
	return nil
}
