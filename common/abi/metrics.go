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

package abi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bufferOverrunTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abi_decode_buffer_overrun_total",
		Help: "Number of decode calls rejected for exceeding DecodeOptions.MaxBytes.",
	})
	junkDataTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abi_decode_junk_data_total",
		Help: "Number of decode calls rejected for trailing unconsumed bytes.",
	})
)
