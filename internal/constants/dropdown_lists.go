package constants

const (
	DefaultDocNo      = "KGTL-QCL-01"
	DefaultRevisionNo = "01"
)

var (
	// TODO move part names/numbers into a table once the plant list stabilises
	PartNames = []string{
		"INLET PIPE", "OUTLET PIPE", "BRACKET", "COVER PLATE", "BASE PLATE", "FLANGE", "HOUSING",
		"SHAFT", "GEAR", "PULLEY", "BUSHING", "SPRING", "WASHER", "GASKET", "CONNECTOR",
	}

	PartNumbers = []string{
		"68P00-S310050", "68P00-S310051", "68P00-S310052", "68P01-S310050", "68P01-S310051",
		"72A00-S410010", "72A00-S410011", "85B00-S210030", "85B00-S210031", "91C00-S110020",
	}

	Operations = []string{
		"BLANKING", "TURNING", "MILLING", "DRILLING", "GRINDING", "BORING", "REAMING", "THREADING",
		"BROACHING", "HOBBING", "STAMPING", "FORMING", "BENDING", "WELDING", "ASSEMBLY",
		"HEAT TREATMENT", "SURFACE COATING", "DEBURRING", "POLISHING", "FINAL INSPECTION",
	}

	Customers = []string{
		"FIG", "ATOM ONE", "TATA MOTORS", "MAHINDRA", "MARUTI SUZUKI", "HONDA", "HYUNDAI", "BAJAJ",
		"TVS", "HERO MOTOCORP", "ASHOK LEYLAND", "FORCE MOTORS", "EICHER", "PIAGGIO", "YAMAHA",
	}

	Operators = []string{
		"ALEX", "RAHUL SHARMA", "SURESH KUMAR", "RAMESH PATEL", "DINESH VERMA", "MAHESH YADAV",
		"PRAKASH SINGH", "VIJAY KUMAR", "ANIL GUPTA", "RAJU MEHTA", "SANJAY JOSHI", "DEEPAK NAIR",
		"RAKESH TIWARI", "MOHAN DAS", "GANESH RAO",
	}

	// каталог по умолчанию, если для операции ничего не заведено
	ProductItems = []string{
		"APPEARANCE", "WIDTH", "LENGTH", "THICKNESS", "DIMENSIONS A", "DIMENSIONS B", "RADIUS",
		"BLANK PROFILE", "DIAMETER", "DEPTH", "HEIGHT", "FLATNESS", "STRAIGHTNESS", "ROUNDNESS",
		"CHAMFER", "THREAD", "HOLE DIAMETER", "PITCH", "SURFACE FINISH", "WEIGHT",
	}

	ProcessItems = []string{
		"SHUT HEIGHT", "BALANCER PRESSURE", "CLUTCH PRESSURE", "CUSHION PRESSURE", "DIE HEIGHT",
		"STROKE LENGTH", "FEED RATE", "CUTTING SPEED", "SPINDLE SPEED", "COOLANT PRESSURE",
		"COOLANT FLOW", "CLAMPING FORCE", "BLANK HOLDER FORCE", "DRAWING FORCE", "PRESS TONNAGE",
		"TEMPERATURE", "CYCLE TIME", "AIR PRESSURE", "HYDRAULIC PRESSURE", "LUBRICATION PRESSURE",
	}

	Tolerances        = []string{"0.01", "0.02", "0.05", "0.08", "0.1", "0.2", "0.3", "0.5", "1.0"}
	ProcessTolerances = []string{"MIN", "MAX", "0.01", "0.05", "0.1", "0.2", "0.5", "1.0"}

	Instruments = []string{
		"VISUAL", "VERNIER", "MICROMETER", "RADIUS GAUGE", "TEMPLATE", "DIGITAL", "GAUGE", "CMM",
		"DIAL INDICATOR", "HEIGHT GAUGE",
	}
)
