// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package conf

// NodeConfig carries the subset of node-level configuration the core's
// ambient services (logging) need. The full chain/network configuration
// belongs to the node process that embeds this codec; it is not part of
// the core.
type NodeConfig struct {
	// DataDir is the root directory the embedding process keeps its
	// working files under. The logger places its log/ subdirectory here.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
