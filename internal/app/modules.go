package app

import (
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/modules/csvfile"
	"github.com/vk/typeflow/modules/jsonfile"
	"github.com/vk/typeflow/modules/partslist"
	"github.com/vk/typeflow/modules/partsreport"
	"github.com/vk/typeflow/modules/streetprice"
)

// coreModules is the definitive list of all modules that are compiled into
// the typeflow binary.
var coreModules = []registry.Module{
	&csvfile.Module{},
	&jsonfile.Module{},
	&partslist.Module{},
	&streetprice.Module{},
	&partsreport.Module{},
}
